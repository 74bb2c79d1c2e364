package test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileConfig = `{
	"user": {"email": "file@example.com", "password": "pw", "id": "1"},
	"userIDs": ["2", "3"],
	"pageID": "9"
}`

func writeConfig(t *testing.T, content string) string {
	dir, err := ioutil.TempDir("", "testconfig")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	file := filepath.Join(dir, "test-config.json")
	require.NoError(t, ioutil.WriteFile(file, []byte(content), 0644))
	return file
}

func withEnv(t *testing.T, value string) {
	old, ok := os.LookupEnv(EnvConfig)
	os.Setenv(EnvConfig, value)
	t.Cleanup(func() {
		if ok {
			os.Setenv(EnvConfig, old)
		} else {
			os.Unsetenv(EnvConfig)
		}
	})
}

func TestLoadConfigFromFile(t *testing.T) {
	withEnv(t, "")
	config, err := LoadConfig(writeConfig(t, fileConfig))
	require.NoError(t, err)
	assert.Equal(t, "file@example.com", config.User.Email)
	assert.Equal(t, "pw", config.User.Password)
	assert.Equal(t, "1", config.User.ID)
	assert.Equal(t, []string{"2", "3"}, config.UserIDs)
	assert.Equal(t, "9", config.PageID)
	assert.Empty(t, config.BaseURL)
}

func TestLoadConfigEnvWins(t *testing.T) {
	withEnv(t, `{"user":{"email":"env@example.com","password":"pw","id":"7"},"baseURL":"http://127.0.0.1:9"}`)
	config, err := LoadConfig(writeConfig(t, fileConfig))
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", config.User.Email)
	assert.Equal(t, "7", config.User.ID)
	assert.Equal(t, "http://127.0.0.1:9", config.BaseURL)
	assert.Empty(t, config.UserIDs)
}

func TestLoadConfigErrors(t *testing.T) {
	withEnv(t, "")
	_, err := LoadConfig(filepath.Join(os.TempDir(), "no-such-test-config.json"))
	assert.Equal(t, ErrNoConfig, err)

	_, err = LoadConfig(writeConfig(t, "{not json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"user":{"email":"a@example.com","password":"pw"}}`))
	assert.Error(t, err)

	withEnv(t, `{"user":`)
	_, err = LoadConfig(writeConfig(t, fileConfig))
	assert.Error(t, err)
}

func TestFixturesFallBackToFakeService(t *testing.T) {
	withEnv(t, "")
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		t.Skip(DefaultConfigFile + " present")
	}
	config := Fixtures(t)
	assert.NotEmpty(t, config.BaseURL)
	assert.Equal(t, "100001", config.User.ID)
	assert.Equal(t, "900001", config.PageID)
	assert.Equal(t, []string{"100002", "100003"}, config.UserIDs)
}

func TestIsNumericID(t *testing.T) {
	assert.True(t, IsNumericID("100001"))
	assert.False(t, IsNumericID("alice"))
	assert.False(t, IsNumericID(""))
}
