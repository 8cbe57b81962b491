package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/slactionbot/internal/database"
	"github.com/edgard/slactionbot/internal/slaction"
	"github.com/edgard/slactionbot/internal/telegram/entities"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second
	maxRecordAttempts  = 3
)

var recordRetryDelay = 500 * time.Millisecond

type actionHandler struct {
	deps HandlerDeps
}

// NewActionHandler returns the default handler. It runs every plain message
// through the action rule and, on a match, posts the rewritten sentence and
// bumps the chat's tally. Messages that don't match are left alone.
func NewActionHandler(deps HandlerDeps) bot.HandlerFunc {
	return actionHandler{deps}.Handle
}

func (h actionHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h actionHandler) handle(ctx context.Context, sender messageSender, update *models.Update) {
	log := h.deps.Logger.With("handler", "action")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update without message or sender", "update_id", update.ID)
		return
	}
	if msg.From.IsBot {
		return
	}

	actor := entities.Sender(msg.From)
	elements := entities.ToElements(msg)
	action, ok := h.deps.Rewriter.Match(actor, elements).Get()
	if !ok {
		log.DebugContext(ctx, "Message does not match action pattern", "chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	out := action.Elements()
	text, ents := entities.Render(out)

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()
	sent, err := sender.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		MessageThreadID: msg.MessageThreadID,
		Text:            text,
		Entities:        ents,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send action message", "error", err, "chat_id", msg.Chat.ID)
		return
	}

	log.InfoContext(ctx, "Sent action message",
		"chat_id", msg.Chat.ID,
		"message_id", sent.ID,
		"action", slaction.RenderPlain(out))

	h.recordWithRetry(ctx, &database.ActionTally{
		ChatID:     msg.Chat.ID,
		ActorID:    action.Actor.ID,
		ActorName:  action.Actor.Name,
		TargetID:   action.Target.ID,
		TargetName: action.Target.Name,
		Action:     action.Verb,
	})
}

// recordWithRetry stores the tally, retrying with a growing delay. Failures
// are logged only; the action message has already been sent.
func (h actionHandler) recordWithRetry(ctx context.Context, tally *database.ActionTally) {
	log := h.deps.Logger.With("handler", "action")
	var err error

	for attempt := 1; attempt <= maxRecordAttempts; attempt++ {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Context cancelled, aborting tally save", "error", ctx.Err(), "chat_id", tally.ChatID, "attempt", attempt)
			return
		}

		dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
		err = h.deps.Store.RecordAction(dbCtx, tally)
		cancel()
		if err == nil {
			return
		}

		log.ErrorContext(ctx, "Failed to record action, retrying", "error", err, "chat_id", tally.ChatID, "attempt", attempt)
		if attempt == maxRecordAttempts {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(recordRetryDelay * time.Duration(attempt)):
		}
	}

	log.ErrorContext(ctx, "Failed to record action after retries", "error", err, "chat_id", tally.ChatID, "attempts", maxRecordAttempts)
}
