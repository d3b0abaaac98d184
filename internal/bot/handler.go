// Package bot implements the optional Telegram admin bot.
package bot

import (
	"wordofday/internal/middleware"
	"wordofday/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	wordService  *service.WordService
	statsService *service.StatsService
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	wordService *service.WordService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		authService:  authService,
		wordService:  wordService,
		statsService: statsService,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)

	// Password entry
	h.bot.Handle(tele.OnText, h.handleText)

	admin := h.bot.Group()
	admin.Use(middleware.AuthMiddleware(h.authService, h.logger))
	admin.Handle("/today", h.handleToday)
	admin.Handle("/stats", h.handleStats)
	admin.Handle(&btnToday, h.handleTodayButton)
	admin.Handle(&btnStats, h.handleStatsButton)
}

// Inline keyboard buttons
var (
	btnToday = tele.Btn{
		Unique: "today",
		Text:   "📖 Word of the day",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnToday),
		menu.Row(btnStats),
	)
	return menu
}
