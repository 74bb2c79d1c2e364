package client

import (
	"time"

	"chatapi/wire"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultUserAgent = "chatapi/1.0"
	DefaultTimeout   = time.Second * 10
)

// Credentials of the account to log in with
type Credentials struct {
	Email    string
	Password string
}

// Options tune a logged in API. Zero values fall back to defaults.
type Options struct {
	// SelfListen delivers messages sent by this session to Listen too
	SelfListen bool `envconfig:"SELF_LISTEN"`
	// ListenEvents delivers typing and other non message events
	ListenEvents bool   `envconfig:"LISTEN_EVENTS"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
	// PageID makes the session act as a page the user administers
	PageID    string        `envconfig:"PAGE_ID"`
	BaseURL   string        `envconfig:"BASE_URL"`
	UserAgent string        `envconfig:"USER_AGENT"`
	Heartbeat time.Duration `envconfig:"HEARTBEAT"`
	Timeout   time.Duration `envconfig:"TIMEOUT"`
}

// OptionsFromEnv reads CHATAPI_* variables
func OptionsFromEnv() (*Options, error) {
	var opts Options
	if err := envconfig.Process("chatapi", &opts); err != nil {
		return nil, errors.Wrap(err, "chatapi env")
	}
	return &opts, nil
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Heartbeat == 0 {
		o.Heartbeat = wire.DefaultHeartbeat
	}
	return o
}
