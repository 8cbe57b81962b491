package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/slactionbot/internal/config"
	"github.com/edgard/slactionbot/internal/database"
	"github.com/edgard/slactionbot/internal/slaction"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Rewriter *slaction.Rewriter
}

// messageSender is the part of *bot.Bot the handlers use to reply.
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

func sendText(ctx context.Context, sender messageSender, log *slog.Logger, chatID int64, text string) {
	if _, err := sender.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}
