package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultDBPath = "slaction.db"

	DefaultStatsTopLimit  = 10
	DefaultStatsRetention = 90 * 24 * time.Hour

	DefaultUseDoubledForm = true

	DefaultSQLMaintenanceSchedule = "0 0 3 * * *"
	DefaultPruneTalliesSchedule   = "0 30 3 * * *"
)

// DefaultPrefixes are the trigger prefixes used when none are configured.
var DefaultPrefixes = []string{"/"}

// DefaultMessages are the bot texts used when none are configured.
var DefaultMessages = MessagesConfig{
	Welcome:      "👋 Hi! Mention someone and add an action like \"/拍 @friend\" and I'll narrate it.",
	Help:         "Usage: \"/拍 @friend\" or \"@a /摸 @b\".\n/slaction_stats shows the top actions in this chat.",
	StatsHeader:  "Top actions in this chat:",
	StatsEmpty:   "No actions recorded yet.",
	StatsReset:   "🔄 Action stats for this chat have been cleared.",
	Unauthorized: "🚫 You are not authorized to use this command.",
	GeneralError: "❌ An error occurred. Please try again later.",
}

// setDefaults registers default values for optional configuration parameters.
// Required keys get an empty default so environment overrides are picked up
// by AutomaticEnv during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_user_id", 0)

	v.SetDefault("slaction.prefixes", DefaultPrefixes)
	v.SetDefault("slaction.use_doubled_form", DefaultUseDoubledForm)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("stats.top_limit", DefaultStatsTopLimit)
	v.SetDefault("stats.retention", DefaultStatsRetention)

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceSchedule)
	v.SetDefault("scheduler.tasks.prune_tallies.enabled", true)
	v.SetDefault("scheduler.tasks.prune_tallies.schedule", DefaultPruneTalliesSchedule)

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.stats_header", DefaultMessages.StatsHeader)
	v.SetDefault("messages.stats_empty", DefaultMessages.StatsEmpty)
	v.SetDefault("messages.stats_reset", DefaultMessages.StatsReset)
	v.SetDefault("messages.unauthorized", DefaultMessages.Unauthorized)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
}
