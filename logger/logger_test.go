package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lv, err := ParseLevel("silent")
	require.NoError(t, err)
	assert.Equal(t, logrus.PanicLevel, lv)

	lv, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lv)

	lv, err = ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, logrus.TraceLevel, lv)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSilentDropsOutput(t *testing.T) {
	defer SetLevel(GetLevel())
	defer SetOutput(os.Stderr)
	buf := &bytes.Buffer{}
	SetOutput(buf)

	require.NoError(t, Init(Settings{Level: LevelSilent}))
	WithField("module", "test").Error("should not be written")
	assert.Empty(t, buf.String())

	require.NoError(t, Init(Settings{Level: "info", Format: "json"}))
	WithFields(Fields{"module": "test"}).Info("written")
	assert.Contains(t, buf.String(), `"module":"test"`)
}
