package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/slactionbot/internal/bot"
	"github.com/edgard/slactionbot/internal/bot/handlers"
	"github.com/edgard/slactionbot/internal/bot/tasks"
	"github.com/edgard/slactionbot/internal/config"
	"github.com/edgard/slactionbot/internal/database"
	"github.com/edgard/slactionbot/internal/logger"
	"github.com/edgard/slactionbot/internal/slaction"
	"github.com/edgard/slactionbot/internal/telegram"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `kong:"default='./config.yaml',env='SLACTION_CONFIG',type='path',help='Path to configuration file'"`
}

// CLI is the command line surface.
type CLI struct {
	Globals

	Run     RunCmd     `kong:"cmd,default='1',help='Run the Telegram bot (default)'"`
	Preview PreviewCmd `kong:"cmd,help='Show how a plain-text message would be rewritten'"`
}

// RunCmd starts the bot and blocks until interrupted.
type RunCmd struct{}

// Run initializes config, logger, database, Telegram client and scheduler,
// then runs until ctx is cancelled.
func (c *RunCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", g.Config, err)
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", cfg.Database.Path, err)
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Rewriter: slaction.NewRewriter(cfg.Slaction.RewriterConfig()),
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log,
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewActionHandler(hDeps)),
	)
	if err != nil {
		return err
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}
	cfg.Telegram.BotUsername = me.Username
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	if err := telegram.SetCommandMenu(ctx, tg, telegram.CommandMenu(handlers.CommandDescriptions())); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		return err
	}

	log.Info("Starting bot...",
		"prefixes", cfg.Slaction.Prefixes,
		"use_doubled_form", cfg.Slaction.UseDoubledForm)
	runErr := bot.NewBot(log, tg, sched).Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		// let the last log lines flush
		time.Sleep(time.Second)
		return runErr
	}

	log.Info("Bot stopped gracefully.")
	return nil
}

// PreviewCmd runs the action rule on a plain-text message without Telegram.
// Mentions are written as @name.
type PreviewCmd struct {
	Prefix  []string `kong:"default='/',help='Trigger prefix, repeatable; checked in order'"`
	Doubled bool     `kong:"default='true',negatable,help='Render one-character verbs as X了X'"`
	Sender  string   `kong:"default='me',help='Name used for the sender'"`

	Text []string `kong:"arg,help='Message text, e.g. \"/拍 @bob\"'"`
}

// Run prints the rewritten message, or "(no rewrite)".
func (c *PreviewCmd) Run() error {
	return c.preview(os.Stdout)
}

func (c *PreviewCmd) preview(w io.Writer) error {
	r := slaction.NewRewriter(slaction.Config{Prefixes: c.Prefix, UseDoubledForm: c.Doubled})
	sender := slaction.Mention{ID: c.Sender, Name: c.Sender}

	out, ok := r.Process(sender, slaction.ParsePlain(strings.Join(c.Text, " "))).Get()
	if !ok {
		_, err := fmt.Fprintln(w, "(no rewrite)")
		return err
	}
	_, err := fmt.Fprintln(w, slaction.RenderPlain(out))
	return err
}
