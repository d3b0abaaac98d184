package middleware

import (
	"wordofday/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PasswordPrompt is sent to chats that have not entered the bot password yet
const PasswordPrompt = "👋 This bot is for administrators. Send the password to continue:"

// AuthMiddleware rejects admin commands from chats that have not authenticated
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if !authService.IsAuthorized(userID) {
				logger.Debug("Rejected unauthorized bot command",
					zap.Int64("user_id", userID),
					zap.String("text", c.Text()),
				)
				return c.Send(PasswordPrompt)
			}

			return next(c)
		}
	}
}
