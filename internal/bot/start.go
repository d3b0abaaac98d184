package bot

import (
	"strings"

	"wordofday/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgMainMenu      = "🏠 Main menu\n\nChoose an action:"
	msgAccessGranted = "✅ Access granted!\n\n" + msgMainMenu
	msgWrongPassword = "❌ Wrong password"
	msgError         = "Something went wrong. Please try again later."
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if !h.authService.IsAuthorized(userID) {
		return c.Send(middleware.PasswordPrompt)
	}

	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handleText treats free text from unauthorized chats as a password attempt
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if h.authService.IsAuthorized(userID) {
		return c.Send(msgMainMenu, mainMenuMarkup())
	}

	if !h.authService.CheckPassword(text) {
		h.logger.Warn("Wrong bot password", zap.Int64("user_id", userID))
		return c.Send(msgWrongPassword)
	}

	h.authService.Authorize(userID)
	h.logger.Info("User authorized", zap.Int64("user_id", userID))

	return c.Send(msgAccessGranted, mainMenuMarkup())
}
