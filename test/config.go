// Package test drives the messaging client end to end: it logs in, sends
// messages and waits for them to come back through Listen.
package test

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"chatapi/services/fakechat/fakechattest"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfig holds the fixtures as JSON and wins over the file
	EnvConfig = "testconfig"
	// DefaultConfigFile is read from the package directory
	DefaultConfigFile = "test-config.json"
)

// ErrNoConfig means neither the env var nor the file is there
var ErrNoConfig = errors.New("no test config")

type User struct {
	Email    string `mapstructure:"email" json:"email"`
	Password string `mapstructure:"password" json:"password"`
	ID       string `mapstructure:"id" json:"id"`
}

// Config is the fixture set of a run
type Config struct {
	User    User     `mapstructure:"user" json:"user"`
	UserIDs []string `mapstructure:"userIDs" json:"userIDs"`
	PageID  string   `mapstructure:"pageID" json:"pageID"`
	BaseURL string   `mapstructure:"baseURL" json:"baseURL"`
}

// LoadConfig reads fixtures from $testconfig, or else from file
func LoadConfig(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if raw := os.Getenv(EnvConfig); strings.TrimSpace(raw) != "" {
		if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
			return nil, errors.Wrapf(err, "read $%s", EnvConfig)
		}
	} else {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decode test config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.User.Email == "" || c.User.Password == "" {
		return errors.New("test config: user.email and user.password are required")
	}
	if c.User.ID == "" {
		return errors.New("test config: user.id is required")
	}
	return nil
}

// Fixtures loads the fixtures of a run. Without any config it serves the
// seeded fake service for the duration of t and describes its accounts.
func Fixtures(t testing.TB) *Config {
	t.Helper()
	config, err := LoadConfig(DefaultConfigFile)
	if err == nil {
		return config
	}
	if err != ErrNoConfig {
		t.Fatal(err)
	}

	srv := fakechattest.Start(t, fakechattest.Seed)
	seed := fakechattest.Seed
	config = &Config{
		User: User{
			Email:    seed.Users[0].Email,
			Password: seed.Users[0].Password,
			ID:       seed.Users[0].ID,
		},
		PageID:  seed.Pages[0].ID,
		BaseURL: srv.URL,
	}
	for _, u := range seed.Users[1:] {
		config.UserIDs = append(config.UserIDs, u.ID)
	}
	return config
}

// IsNumericID reports whether id looks like an account id
func IsNumericID(id string) bool {
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil
}
