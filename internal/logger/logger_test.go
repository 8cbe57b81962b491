package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact", input: "hello", maxLen: 5, want: "hello"},
		{name: "ascii cut", input: "hello world", maxLen: 8, want: "hello..."},
		{name: "cjk is cut by rune", input: "拍了拍拍了拍", maxLen: 5, want: "拍了..."},
		{name: "tiny limit", input: "hello", maxLen: 2, want: "..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateString(tt.input, tt.maxLen))
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, "debug", true)

	called := false
	handler := Middleware(log)(func(context.Context, *bot.Bot, *models.Update) { called = true })

	handler(context.Background(), nil, &models.Update{
		ID: 5,
		Message: &models.Message{
			ID:   9,
			Chat: models.Chat{ID: -100},
			From: &models.User{ID: 3},
			Text: "/拍 @bob",
		},
	})

	assert.True(t, called)
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, `"update_type":"message"`)
	assert.Contains(t, out, `"chat_id":-100`)
	assert.Contains(t, out, `"text_preview":"/拍 @bob"`)
	assert.Contains(t, out, "Finished processing update")
}
