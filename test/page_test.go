package test

import (
	"context"
	"testing"

	"chatapi/client"
	"chatapi/logger"

	"github.com/stretchr/testify/suite"
)

type PageSuite struct {
	chatSuite
}

func (s *PageSuite) SetupSuite() {
	s.login(client.Options{
		SelfListen:   true,
		ListenEvents: true,
		LogLevel:     logger.LevelSilent,
	}, true)
}

func (s *PageSuite) TestLoginAsPage() {
	ctx := context.Background()
	userID := s.config.User.ID

	s.Run("should login without error", func() {
		s.NotNil(s.api)
	})
	s.Run("should get the right user ID", func() {
		s.Equal(userID, s.api.GetCurrentUserID())
	})
	s.Run("should send text message object (user)", func() {
		s.sendTextObject(ctx, userID)
	})
	s.Run("should send sticker message object (user)", func() {
		s.sendSticker(ctx, userID)
	})
	s.Run("should send basic string (user)", func() {
		s.sendBasicString(ctx, userID)
	})
	s.Run("should send typing indicator", func() {
		s.sendTypingIndicator(ctx, userID)
	})
	s.Run("should get the right user info", func() {
		s.getUserInfo(ctx, userID)
	})
	s.Run("should get the list of friends", func() {
		s.getFriendsList(ctx)
	})
	s.Run("should log out", func() {
		s.logout(ctx)
	})
}

func TestPageSuite(t *testing.T) {
	suite.Run(t, new(PageSuite))
}
