package conf

import (
	"bytes"
	"io"

	"chatapi/logger"
	"chatapi/storage"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config of the fake messaging service
type Config struct {
	ServiceID      string                `mapstructure:"serviceID"`
	Listen         string                `mapstructure:"listen"`
	LogLevel       string                `mapstructure:"logLevel"`
	LogFile        string                `mapstructure:"logFile"`
	ProfileBaseURL string                `mapstructure:"profileBaseURL"`
	RedisAddrs     string                `mapstructure:"redisAddrs"`
	MessageDb      string                `mapstructure:"messageDb"`
	NodeID         int64                 `mapstructure:"nodeID"`
	Directory      storage.DirectorySeed `mapstructure:"directory" ignored:"true"`
}

const (
	DefaultListen         = ":8080"
	DefaultServiceID      = "fakechat01"
	DefaultProfileBaseURL = "https://chat.example.com/"
)

// Init reads file (yaml or json) then overlays FAKECHAT_* env vars
func Init(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", file)
	}
	return load(v)
}

// Parse reads config of the given type ("yaml", "json") from r
func Parse(r io.Reader, typ string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(typ)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return load(v)
}

// Default is a config without any account
func Default() (*Config, error) {
	return Parse(bytes.NewReader([]byte("{}")), "json")
}

func load(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := envconfig.Process("fakechat", &config); err != nil {
		return nil, errors.Wrap(err, "env config")
	}
	if config.Listen == "" {
		config.Listen = DefaultListen
	}
	if config.ServiceID == "" {
		config.ServiceID = DefaultServiceID
	}
	if config.ProfileBaseURL == "" {
		config.ProfileBaseURL = DefaultProfileBaseURL
	}
	logger.WithFields(logger.Fields{
		"module":    "conf",
		"serviceID": config.ServiceID,
		"users":     len(config.Directory.Users),
		"pages":     len(config.Directory.Pages),
	}).Debug("config loaded")
	return &config, nil
}
