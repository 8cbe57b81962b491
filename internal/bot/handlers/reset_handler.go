package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const resetTimeout = 30 * time.Second

// NewResetHandler returns a handler for the /slaction_reset command.
// It is registered behind AdminOnly.
func NewResetHandler(deps HandlerDeps) bot.HandlerFunc {
	return resetHandler{deps}.Handle
}

type resetHandler struct {
	deps HandlerDeps
}

func (h resetHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h resetHandler) handle(ctx context.Context, sender messageSender, update *models.Update) {
	log := h.deps.Logger.With("handler", "reset")
	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Reset handler called with nil Message or From", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested stats reset", "chat_id", chatID, "user_id", update.Message.From.ID)

	timeoutCtx, cancel := context.WithTimeout(ctx, resetTimeout)
	defer cancel()

	if err := h.deps.Store.DeleteChatTallies(timeoutCtx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to reset stats", "error", err, "chat_id", chatID)
		sendText(ctx, sender, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sendText(ctx, sender, log, chatID, h.deps.Config.Messages.StatsReset)
}
