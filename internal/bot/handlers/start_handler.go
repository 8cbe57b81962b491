package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h startHandler) handle(ctx context.Context, sender messageSender, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", update.Message.Chat.ID, "user_id", update.Message.From.ID)
	sendText(ctx, sender, log, update.Message.Chat.ID, withBotName(h.deps, h.deps.Config.Messages.Welcome))
}

// withBotName replaces the "@botname" placeholder with the bot's username.
func withBotName(deps HandlerDeps, text string) string {
	if deps.Config.Telegram.BotUsername == "" {
		return text
	}
	return strings.ReplaceAll(text, "@botname", "@"+deps.Config.Telegram.BotUsername)
}
