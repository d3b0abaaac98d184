package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordofday/internal/domain"
	"wordofday/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 5 * time.Second

const msgNoWord = "📭 No word of the day yet. Upload words from the admin page."

// handleToday shows the word that the next daily email will carry
func (h *Handler) handleToday(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	word, err := h.wordService.Today(ctx)
	if errors.Is(err, domain.ErrWordNotFound) {
		return c.Send(msgNoWord, mainMenuMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to get word of the day", zap.Error(err))
		return c.Send(msgError)
	}

	return c.Send(formatWord(word), mainMenuMarkup())
}

// handleStats shows subscriber and vocabulary counts
func (h *Handler) handleStats(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	stats, err := h.statsService.Summary(ctx)
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		return c.Send(msgError)
	}

	return c.Send(formatStats(stats), mainMenuMarkup())
}

func (h *Handler) handleTodayButton(c tele.Context) error {
	_ = c.Respond()
	return h.handleToday(c)
}

func (h *Handler) handleStatsButton(c tele.Context) error {
	_ = c.Respond()
	return h.handleStats(c)
}

func formatWord(word *domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 %s\n\n", word.Title)
	fmt.Fprintf(&b, "%s\n\n", word.Description)
	fmt.Fprintf(&b, "Example: %s\n\n", word.Example)
	fmt.Fprintf(&b, "Published %s", word.PublishedDate.UTC().Format("2006-01-02 15:04 MST"))
	return b.String()
}

func formatStats(stats *service.Stats) string {
	var b strings.Builder
	b.WriteString("📊 Stats\n\n")
	fmt.Fprintf(&b, "Subscribers: %d\n", stats.Users)
	fmt.Fprintf(&b, "Words: %d\n", stats.Words)
	if stats.LatestWord != nil {
		fmt.Fprintf(&b, "Word of the day: %s", stats.LatestWord.Title)
	} else {
		b.WriteString("Word of the day: none")
	}
	return b.String()
}
