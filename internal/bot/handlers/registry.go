package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its pattern and middleware.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// Command names understood by the bot.
const (
	CommandStart = "start"
	CommandHelp  = "help"
	CommandStats = "slaction_stats"
	CommandReset = "slaction_reset"
)

// RegisterAllCommands returns every command handler keyed by its slash name.
// The action rule itself runs as the default handler, see NewActionHandler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/"+CommandStart] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandStart,
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/"+CommandHelp] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandHelp,
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/"+CommandStats] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandStats,
		Handler:     NewStatsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	handlers["/"+CommandReset] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     CommandReset,
		Handler:     NewResetHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  []tgbot.Middleware{AdminOnly(deps)},
	}

	return handlers
}

// CommandDescriptions returns the text shown next to each command in the
// Telegram client menu.
func CommandDescriptions() map[string]string {
	return map[string]string{
		CommandStart: "Start talking to the bot",
		CommandHelp:  "Show how to trigger an action",
		CommandStats: "Show the top actions in this chat",
		CommandReset: "Clear action stats for this chat (admin only)",
	}
}
