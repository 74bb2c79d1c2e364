package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"chatapi/iface"
	"chatapi/logger"
	"chatapi/wire"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// API is a logged in session of the messaging service
type API struct {
	sync.Mutex
	options   Options
	rest      *resty.Client
	userID    string
	actorID   string
	token     string
	loggedOut int32
	listeners map[int]iface.ListenFunc
	nextID    int
	stream    iface.IClient
	log       *logger.Entry
}

var _ iface.API = (*API)(nil)

// Login authenticates and returns a ready API. A nil opts uses defaults.
func Login(ctx context.Context, credentials Credentials, opts *Options) (*API, error) {
	if credentials.Email == "" || credentials.Password == "" {
		return nil, errors.New("email and password are required")
	}
	var options Options
	if opts != nil {
		options = *opts
	}
	options = options.withDefaults()
	if options.LogLevel != "" {
		if err := logger.Init(logger.Settings{Level: options.LogLevel}); err != nil {
			return nil, err
		}
	}

	rest := resty.New().
		SetHostURL(strings.TrimSuffix(options.BaseURL, "/")).
		SetTimeout(options.Timeout).
		SetHeader(wire.HeaderUserAgent, options.UserAgent)

	log := logger.WithFields(logger.Fields{
		"module": "client",
		"email":  credentials.Email,
	})
	log.Info("logging in")

	resp, err := rest.R().
		SetContext(ctx).
		SetBody(&wire.LoginReq{
			Email:    credentials.Email,
			Password: credentials.Password,
			PageID:   options.PageID,
		}).
		SetResult(&wire.LoginResp{}).
		SetError(&wire.ErrorResp{}).
		Post(wire.PathLogin)
	if err = check(resp, err); err != nil {
		return nil, errors.Wrap(err, "login")
	}
	login := resp.Result().(*wire.LoginResp)
	if login.Token == "" || login.UserID == "" {
		return nil, errors.New("login: empty session in response")
	}
	rest.SetAuthToken(login.Token)

	log = log.WithFields(logger.Fields{
		"user":  login.UserID,
		"actor": login.ActorID,
	})
	log.Info("logged in")
	return &API{
		options:   options,
		rest:      rest,
		userID:    login.UserID,
		actorID:   login.ActorID,
		token:     login.Token,
		listeners: make(map[int]iface.ListenFunc),
		log:       log,
	}, nil
}

// GetCurrentUserID is the logged in user, also when acting as a page
func (a *API) GetCurrentUserID() string {
	return a.userID
}

// ActorID is who messages are sent as: the page id or the user id
func (a *API) ActorID() string {
	return a.actorID
}

func (a *API) Logout(ctx context.Context) error {
	if err := a.ready(); err != nil {
		return err
	}
	// detach first so the service closing the stream is not reported
	a.Lock()
	stream := a.stream
	a.stream = nil
	a.Unlock()
	if stream != nil {
		stream.Close()
	}

	resp, err := a.request(ctx).Post(wire.PathLogout)
	if err = check(resp, err); err != nil {
		err = errors.Wrap(err, "logout")
		//仍然登录，但流已关闭
		if stream != nil {
			a.broadcast(nil, err)
		}
		return err
	}
	if !atomic.CompareAndSwapInt32(&a.loggedOut, 0, 1) {
		return iface.ErrNotLoggedIn
	}
	a.log.Info("logged out")
	return nil
}

func (a *API) ready() error {
	if atomic.LoadInt32(&a.loggedOut) == 1 {
		return iface.ErrNotLoggedIn
	}
	return nil
}

func (a *API) request(ctx context.Context) *resty.Request {
	return a.rest.R().
		SetContext(ctx).
		SetError(&wire.ErrorResp{})
}

// check turns transport failures and error statuses into errors; the
// iface sentinels stay reachable through errors.Cause
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	msg := resp.Status()
	if e, ok := resp.Error().(*wire.ErrorResp); ok && e.Message != "" {
		msg = e.Message
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return errors.Wrap(iface.ErrUnauthorized, msg)
	case http.StatusForbidden:
		return errors.Wrap(iface.ErrForbidden, msg)
	}
	return errors.Errorf("%d: %s", resp.StatusCode(), msg)
}
