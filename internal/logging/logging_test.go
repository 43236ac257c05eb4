package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevel(t *testing.T) {
	closeFn, err := Setup(afero.NewMemMapFs(), Options{Level: "debug"})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	_, err = Setup(afero.NewMemMapFs(), Options{Level: "chatty"})
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestSetupFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	closeFn, err := Setup(fs, Options{Level: "info", File: "/logs/swatchbook.log"})
	require.NoError(t, err)

	log.WithField("palette", "p1").Info("saved colour")
	require.NoError(t, closeFn())

	data, err := afero.ReadFile(fs, "/logs/swatchbook.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "saved colour")
	assert.Contains(t, string(data), "palette=p1")
}
