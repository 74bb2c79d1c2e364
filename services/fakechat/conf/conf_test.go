package conf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
serviceID: chat01
listen: ":9000"
logLevel: debug
directory:
  users:
    - id: "100"
      email: alice@example.com
      password: secret
      name: Alice Liddell
      firstName: Alice
      vanity: alice
      gender: female_singular
  pages:
    - id: "900"
      name: Wonderland
      admins: ["100"]
  friendships:
    - ["100", "101"]
`

func TestParseYAML(t *testing.T) {
	c, err := Parse(strings.NewReader(sample), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "chat01", c.ServiceID)
	assert.Equal(t, ":9000", c.Listen)
	assert.Equal(t, DefaultProfileBaseURL, c.ProfileBaseURL)
	require.Len(t, c.Directory.Users, 1)
	assert.Equal(t, "alice@example.com", c.Directory.Users[0].Email)
	assert.Equal(t, "Alice", c.Directory.Users[0].FirstName)
	require.Len(t, c.Directory.Pages, 1)
	assert.Equal(t, []string{"100"}, c.Directory.Pages[0].Admins)
	assert.Equal(t, [][]string{{"100", "101"}}, c.Directory.Friendships)
}

func TestEnvOverridesFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "fakechat")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "conf.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(sample), 0644))

	os.Setenv("FAKECHAT_LISTEN", ":9100")
	defer os.Unsetenv("FAKECHAT_LISTEN")

	c, err := Init(file)
	require.NoError(t, err)
	assert.Equal(t, ":9100", c.Listen)
	assert.Equal(t, "chat01", c.ServiceID)
}

func TestDefaults(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, c.Listen)
	assert.Equal(t, DefaultServiceID, c.ServiceID)
	assert.Empty(t, c.Directory.Users)
}

func TestInitMissingFile(t *testing.T) {
	_, err := Init("/nonexistent/conf.yaml")
	assert.Error(t, err)
}
