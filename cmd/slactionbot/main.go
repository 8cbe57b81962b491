// Package main contains the entrypoint for the slactionbot Telegram bot.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("slactionbot"),
		kong.Description("Telegram bot that narrates \"/拍 @friend\" style actions."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
	)

	err := kctx.Run()
	stop()
	if err != nil {
		slog.Error("slactionbot exited with error", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
