// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that lets only the configured admin through.
// Everyone else gets the "unauthorized" message and processing stops.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, bot, update)
				return
			}
			if !denyNonAdmin(ctx, bot, deps, update.Message) {
				next(ctx, bot, update)
			}
		}
	}
}

// denyNonAdmin replies with the unauthorized message and returns true when
// msg was not sent by the admin.
func denyNonAdmin(ctx context.Context, sender messageSender, deps HandlerDeps, msg *models.Message) bool {
	userID := msg.From.ID
	if userID == deps.Config.Telegram.AdminUserID {
		return false
	}

	chatID := msg.Chat.ID
	log := deps.Logger.With("middleware", "AdminOnly")
	log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

	sendText(ctx, sender, log, chatID, deps.Config.Messages.Unauthorized)
	return true
}
