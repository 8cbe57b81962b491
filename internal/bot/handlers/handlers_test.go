package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/slactionbot/internal/config"
	"github.com/edgard/slactionbot/internal/database"
	"github.com/edgard/slactionbot/internal/slaction"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: len(f.sent)}, nil
}

type fakeStore struct {
	database.Store

	mu       sync.Mutex
	recorded []*database.ActionTally
	top      []*database.ActionTally
	deleted  []int64
	failures int
	err      error
}

func (f *fakeStore) RecordAction(_ context.Context, tally *database.ActionTally) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("database is locked")
	}
	f.recorded = append(f.recorded, tally)
	return nil
}

func (f *fakeStore) GetTopActions(context.Context, int64, int) ([]*database.ActionTally, error) {
	return f.top, f.err
}

func (f *fakeStore) DeleteChatTallies(_ context.Context, chatID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, chatID)
	return nil
}

func newTestDeps(store database.Store) HandlerDeps {
	return HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			Telegram: config.TelegramConfig{AdminUserID: 1, BotUsername: "slapbot"},
			Stats:    config.StatsConfig{TopLimit: 10},
			Messages: config.DefaultMessages,
		},
		Store:    store,
		Rewriter: slaction.NewRewriter(slaction.DefaultConfig()),
	}
}

func messageUpdate(from *models.User, text string, ents ...models.MessageEntity) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:       10,
			Chat:     models.Chat{ID: -100},
			From:     from,
			Text:     text,
			Entities: ents,
		},
	}
}

var alice = &models.User{ID: 2, FirstName: "Alice"}

func TestActionHandlerRewritesAndRecords(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	sender := &fakeSender{}
	h := actionHandler{newTestDeps(store)}

	h.handle(context.Background(), sender, messageUpdate(alice, "/拍 @bob",
		models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 3, Length: 4}))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(-100), sender.sent[0].ChatID)
	assert.Equal(t, "Alice 拍了拍 @bob ！", sender.sent[0].Text)
	assert.Equal(t, []models.MessageEntity{
		{Type: models.MessageEntityTypeTextMention, Offset: 0, Length: 5, User: &models.User{ID: 2}},
		{Type: models.MessageEntityTypeMention, Offset: 10, Length: 4},
	}, sender.sent[0].Entities)

	require.Len(t, store.recorded, 1)
	assert.Equal(t, &database.ActionTally{
		ChatID:     -100,
		ActorID:    "2",
		ActorName:  "Alice",
		TargetID:   "@bob",
		TargetName: "@bob",
		Action:     "拍了拍",
	}, store.recorded[0])
}

func TestActionHandlerTwoMentions(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	sender := &fakeSender{}
	h := actionHandler{newTestDeps(store)}

	h.handle(context.Background(), sender, messageUpdate(alice, "@a /摸 @b",
		models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 0, Length: 2},
		models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 6, Length: 2}))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "@a 摸了摸 @b ！", sender.sent[0].Text)
	require.Len(t, store.recorded, 1)
	assert.Equal(t, "@a", store.recorded[0].ActorID)
}

func TestActionHandlerPassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		update *models.Update
	}{
		{name: "no message", update: &models.Update{ID: 1}},
		{name: "no sender", update: messageUpdate(nil, "/拍 @bob")},
		{name: "bot sender", update: messageUpdate(&models.User{ID: 3, IsBot: true}, "/拍 @bob",
			models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 3, Length: 4})},
		{name: "no mention", update: messageUpdate(alice, "/拍")},
		{name: "no prefix", update: messageUpdate(alice, "hi @bob",
			models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 3, Length: 4})},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{}
			sender := &fakeSender{}
			actionHandler{newTestDeps(store)}.handle(context.Background(), sender, tt.update)

			assert.Empty(t, sender.sent)
			assert.Empty(t, store.recorded)
		})
	}
}

func TestActionHandlerSendFailureSkipsRecord(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	sender := &fakeSender{err: errors.New("forbidden")}

	actionHandler{newTestDeps(store)}.handle(context.Background(), sender, messageUpdate(alice, "/拍 @bob",
		models.MessageEntity{Type: models.MessageEntityTypeMention, Offset: 3, Length: 4}))

	assert.Empty(t, store.recorded)
}

func TestRecordWithRetry(t *testing.T) {
	recordRetryDelay = time.Millisecond
	t.Cleanup(func() { recordRetryDelay = 500 * time.Millisecond })

	store := &fakeStore{failures: 2}
	h := actionHandler{newTestDeps(store)}
	h.recordWithRetry(context.Background(), &database.ActionTally{ChatID: 1, ActorID: "a", TargetID: "b", Action: "拍了"})
	assert.Len(t, store.recorded, 1)

	store = &fakeStore{failures: maxRecordAttempts}
	h = actionHandler{newTestDeps(store)}
	h.recordWithRetry(context.Background(), &database.ActionTally{ChatID: 1, ActorID: "a", TargetID: "b", Action: "拍了"})
	assert.Empty(t, store.recorded)
}

func TestStartAndHelpHandlers(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(&fakeStore{})
	deps.Config.Messages.Welcome = "hi from @botname"
	sender := &fakeSender{}

	startHandler{deps}.handle(context.Background(), sender, messageUpdate(alice, "/start"))
	helpHandler{deps}.handle(context.Background(), sender, messageUpdate(alice, "/help"))
	startHandler{deps}.handle(context.Background(), sender, &models.Update{ID: 2})

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "hi from @slapbot", sender.sent[0].Text)
	assert.Equal(t, config.DefaultMessages.Help, sender.sent[1].Text)
}

func TestStatsHandler(t *testing.T) {
	t.Parallel()

	store := &fakeStore{top: []*database.ActionTally{
		{ActorID: "2", ActorName: "Alice", TargetID: "@bob", TargetName: "@bob", Action: "拍了拍", Count: 3},
		{ActorID: "7", TargetID: "@carol", Action: "摸了", Count: 1},
	}}
	sender := &fakeSender{}

	statsHandler{newTestDeps(store)}.handle(context.Background(), sender, messageUpdate(alice, "/slaction_stats"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, config.DefaultMessages.StatsHeader+"\n1. Alice 拍了拍 @bob × 3\n2. 7 摸了 @carol × 1", sender.sent[0].Text)
}

func TestStatsHandlerEmptyAndError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	statsHandler{newTestDeps(&fakeStore{})}.handle(context.Background(), sender, messageUpdate(alice, "/slaction_stats"))
	statsHandler{newTestDeps(&fakeStore{err: errors.New("boom")})}.handle(context.Background(), sender, messageUpdate(alice, "/slaction_stats"))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, config.DefaultMessages.StatsEmpty, sender.sent[0].Text)
	assert.Equal(t, config.DefaultMessages.GeneralError, sender.sent[1].Text)
}

func TestResetHandler(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	sender := &fakeSender{}

	resetHandler{newTestDeps(store)}.handle(context.Background(), sender, messageUpdate(&models.User{ID: 1}, "/slaction_reset"))

	assert.Equal(t, []int64{-100}, store.deleted)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, config.DefaultMessages.StatsReset, sender.sent[0].Text)
}

func TestDenyNonAdmin(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(&fakeStore{})
	sender := &fakeSender{}

	admin := messageUpdate(&models.User{ID: 1}, "/slaction_reset").Message
	assert.False(t, denyNonAdmin(context.Background(), sender, deps, admin))
	assert.Empty(t, sender.sent)

	other := messageUpdate(alice, "/slaction_reset").Message
	assert.True(t, denyNonAdmin(context.Background(), sender, deps, other))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, config.DefaultMessages.Unauthorized, sender.sent[0].Text)
}

func TestRegisterAllCommands(t *testing.T) {
	t.Parallel()

	cmds := RegisterAllCommands(newTestDeps(&fakeStore{}))

	assert.Len(t, cmds, 4)
	for _, name := range []string{CommandStart, CommandHelp, CommandStats, CommandReset} {
		reg, ok := cmds["/"+name]
		require.True(t, ok, name)
		assert.Equal(t, name, reg.Pattern)
		assert.NotNil(t, reg.Handler)
	}
	assert.Len(t, cmds["/"+CommandReset].Middleware, 1)
}
