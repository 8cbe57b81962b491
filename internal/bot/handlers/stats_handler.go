package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/slactionbot/internal/database"
)

const statsQueryTimeout = 10 * time.Second

// NewStatsHandler returns a handler for the /slaction_stats command.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h statsHandler) handle(ctx context.Context, sender messageSender, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	queryCtx, cancel := context.WithTimeout(ctx, statsQueryTimeout)
	defer cancel()

	tallies, err := h.deps.Store.GetTopActions(queryCtx, chatID, h.deps.Config.Stats.TopLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load action stats", "error", err, "chat_id", chatID)
		sendText(ctx, sender, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if len(tallies) == 0 {
		sendText(ctx, sender, log, chatID, h.deps.Config.Messages.StatsEmpty)
		return
	}

	log.InfoContext(ctx, "Sending action stats", "chat_id", chatID, "count", len(tallies))
	sendText(ctx, sender, log, chatID, formatStats(h.deps.Config.Messages.StatsHeader, tallies))
}

// formatStats renders one numbered line per tally under header.
func formatStats(header string, tallies []*database.ActionTally) string {
	var b strings.Builder
	b.WriteString(header)
	for i, t := range tallies {
		fmt.Fprintf(&b, "\n%d. %s %s %s × %d", i+1, nameOrID(t.ActorName, t.ActorID), t.Action, nameOrID(t.TargetName, t.TargetID), t.Count)
	}
	return b.String()
}

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
