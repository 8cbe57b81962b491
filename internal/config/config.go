// Package config provides configuration loading, validation, and defaults
// for slactionbot. SLACTION_* environment variables override the YAML file,
// which overrides the built-in defaults.
package config

import (
	"errors"
	"time"

	"github.com/edgard/slactionbot/internal/slaction"
)

// ErrInvalidConfig wraps every configuration loading or validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config defines the application configuration parameters for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Slaction  SlactionConfig  `mapstructure:"slaction"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot credentials. BotUsername is filled at runtime.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"required,gt=0"`

	BotUsername string `mapstructure:"-"`
}

// SlactionConfig configures the action rewrite rule.
type SlactionConfig struct {
	Prefixes       []string `mapstructure:"prefixes"         validate:"min=1,dive,required"`
	UseDoubledForm bool     `mapstructure:"use_doubled_form"`
}

// RewriterConfig converts the section into the rule's own config type.
func (c SlactionConfig) RewriterConfig() slaction.Config {
	prefixes := make([]string, len(c.Prefixes))
	copy(prefixes, c.Prefixes)
	return slaction.Config{Prefixes: prefixes, UseDoubledForm: c.UseDoubledForm}
}

// DatabaseConfig points at the SQLite file used for action tallies.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// StatsConfig controls the tally leaderboard and its retention.
type StatsConfig struct {
	TopLimit  int           `mapstructure:"top_limit" validate:"min=1,max=50"`
	Retention time.Duration `mapstructure:"retention" validate:"min=1h"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig is a single scheduled task entry. Schedule is a six-field cron
// expression (seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds the user-facing bot texts.
type MessagesConfig struct {
	Welcome      string `mapstructure:"welcome"       validate:"required"`
	Help         string `mapstructure:"help"          validate:"required"`
	StatsHeader  string `mapstructure:"stats_header"  validate:"required"`
	StatsEmpty   string `mapstructure:"stats_empty"   validate:"required"`
	StatsReset   string `mapstructure:"stats_reset"   validate:"required"`
	Unauthorized string `mapstructure:"unauthorized"  validate:"required"`
	GeneralError string `mapstructure:"general_error" validate:"required"`
}
