package test

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"chatapi/client"
	"chatapi/iface"
	"chatapi/logger"
	"chatapi/wire"

	"github.com/stretchr/testify/suite"
)

// chatSuite holds the session shared by the ordered steps of a suite
type chatSuite struct {
	suite.Suite
	config        *Config
	api           *client.API
	tests         Expectations
	errs          chan error
	stopListening func()
	signals       chan os.Signal
}

// login opens the session of the suite; asPage acts as the fixture page
func (s *chatSuite) login(opts client.Options, asPage bool) {
	s.config = Fixtures(s.T())
	if asPage {
		opts.PageID = s.config.PageID
	}
	if s.config.BaseURL != "" {
		opts.BaseURL = s.config.BaseURL
	}
	api, err := client.Login(context.Background(), client.Credentials{
		Email:    s.config.User.Email,
		Password: s.config.User.Password,
	}, &opts)
	s.Require().NoError(err)
	s.Require().NotNil(api)
	s.api = api

	s.errs = make(chan error, 1)
	s.stopListening = api.Listen(func(ev *wire.Event, err error) {
		if err != nil {
			select {
			case s.errs <- err:
			default:
			}
			return
		}
		s.tests.Dispatch(ev)
	})

	s.signals = make(chan os.Signal, 1)
	signal.Notify(s.signals, os.Interrupt)
	go logoutOnInterrupt(api, s.signals)
}

// logoutOnInterrupt logs api out when signals delivers; closing signals
// ends it without logging out
func logoutOnInterrupt(api iface.API, signals <-chan os.Signal) {
	if _, ok := <-signals; ok && api.Logout(context.Background()) == nil {
		logger.Info("Logged out :)")
	}
}

func (s *chatSuite) TearDownSuite() {
	if s.stopListening != nil {
		s.stopListening()
	}
	if s.signals != nil {
		signal.Stop(s.signals)
		close(s.signals)
	}
}

// expect runs send and waits until the listener sees an event accepted
// by matcher
func (s *chatSuite) expect(matcher Matcher, send func() error) {
	done := s.tests.Expect(matcher)
	s.Require().NoError(send())
	select {
	case <-done:
	case err := <-s.errs:
		s.FailNow("listen failed", err.Error())
	case <-time.After(Timeout):
		s.FailNow("timed out waiting for the event")
	}
}

func (s *chatSuite) sendTextObject(ctx context.Context, threadID string) {
	body := fmt.Sprintf("text-msg-obj-%d", now())
	s.expect(IsMessage(body), func() error {
		_, err := s.api.SendMessage(ctx, wire.Message{Body: body}, threadID)
		return err
	})
}

func (s *chatSuite) sendSticker(ctx context.Context, threadID string) {
	stickerID := "767334526626290"
	s.expect(IsSticker(stickerID), func() error {
		_, err := s.api.SendMessage(ctx, client.Sticker(stickerID), threadID)
		return err
	})
}

func (s *chatSuite) sendBasicString(ctx context.Context, threadID string) {
	body := fmt.Sprintf("basic-str-%d", now())
	s.expect(IsMessage(body), func() error {
		_, err := s.api.SendText(ctx, body, threadID)
		return err
	})
}

func (s *chatSuite) sendTypingIndicator(ctx context.Context, threadID string) {
	stopType, err := s.api.SendTypingIndicator(ctx, threadID)
	s.Require().NoError(err)
	s.Require().NoError(stopType(ctx))
}

func (s *chatSuite) getUserInfo(ctx context.Context, userID string) {
	data, err := s.api.GetUserInfo(ctx, userID)
	s.Require().NoError(err)
	s.Require().Contains(data, userID)
	user := data[userID]
	s.NotEmpty(user.Name)
	s.NotEmpty(user.FirstName)
	s.NotNil(user.Vanity)
	s.NotEmpty(user.ProfileURL)
	s.NotEmpty(user.Gender)
	s.NotEmpty(user.Type)
	s.False(user.IsFriend)
}

func (s *chatSuite) getFriendsList(ctx context.Context) {
	data, err := s.api.GetFriendsList(ctx)
	s.Require().NoError(err)
	s.NotNil(data)
	for _, friend := range data {
		s.True(IsNumericID(friend.UserID), "friend id %q", friend.UserID)
	}
}

func (s *chatSuite) logout(ctx context.Context) {
	s.Require().NoError(s.api.Logout(ctx))
}

func now() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
