package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func createStore(t *testing.T, client *redis.Client) *Store {
	return NewStore(client, 30*time.Minute, logger.NewTestLogger(t))
}

// ==========================
// Round-Trip Tests
// ==========================

func TestStore_SaveAndLoad(t *testing.T) {
	client, _ := setupRedis(t)
	store := createStore(t, client)
	ctx := context.Background()

	saved := &models.ConversationContext{
		LastIntent:  "view_expiry_summary",
		LastSection: models.Section(2),
	}
	require.NoError(t, store.Save(ctx, "user-1", saved))

	loaded := store.Load(ctx, "user-1")

	assert.Equal(t, "view_expiry_summary", loaded.LastIntent)
	assert.Equal(t, models.Section(2), loaded.LastSection)
}

func TestStore_LoadFreshConversation(t *testing.T) {
	client, _ := setupRedis(t)
	store := createStore(t, client)

	loaded := store.Load(context.Background(), "never-seen")

	assert.Empty(t, loaded.LastIntent)
	assert.False(t, loaded.LastSection.Valid)
}

func TestStore_SaveWithoutSectionClearsKey(t *testing.T) {
	client, mr := setupRedis(t)
	store := createStore(t, client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", &models.ConversationContext{
		LastIntent:  "view_stock_alerts",
		LastSection: models.Section(1),
	}))
	require.True(t, mr.Exists("chatbot_last_section:user-1"))

	require.NoError(t, store.Save(ctx, "user-1", &models.ConversationContext{
		LastIntent:  "small_talk",
		LastSection: models.NoSection(),
	}))

	assert.False(t, mr.Exists("chatbot_last_section:user-1"))

	loaded := store.Load(ctx, "user-1")
	assert.Equal(t, "small_talk", loaded.LastIntent)
	assert.False(t, loaded.LastSection.Valid)
}

func TestStore_KeysCarryTTL(t *testing.T) {
	client, mr := setupRedis(t)
	store := createStore(t, client)

	require.NoError(t, store.Save(context.Background(), "user-1", &models.ConversationContext{
		LastIntent:  "show_help",
		LastSection: models.Section(3),
	}))

	assert.Greater(t, mr.TTL("chatbot_last_intent:user-1"), time.Duration(0))
	assert.Greater(t, mr.TTL("chatbot_last_section:user-1"), time.Duration(0))
}

func TestStore_IgnoresCorruptSectionValue(t *testing.T) {
	client, mr := setupRedis(t)
	store := createStore(t, client)

	mr.Set("chatbot_last_section:user-1", "not-a-number")

	loaded := store.Load(context.Background(), "user-1")

	assert.False(t, loaded.LastSection.Valid)
}

// ==========================
// Fault Tests
// ==========================

func TestStore_LoadFaultDegradesToFreshContext(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := createStore(t, client)

	mock.ExpectGet("chatbot_last_intent:user-1").SetErr(errors.New("connection refused"))

	loaded := store.Load(context.Background(), "user-1")

	assert.Empty(t, loaded.LastIntent)
	assert.False(t, loaded.LastSection.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveFaultIsReturned(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := createStore(t, client)

	mock.ExpectSet("chatbot_last_intent:user-1", "show_help", 30*time.Minute).
		SetErr(errors.New("connection refused"))

	err := store.Save(context.Background(), "user-1", &models.ConversationContext{
		LastIntent: "show_help",
	})

	assert.Error(t, err)
}

// ==========================
// Token Resolution Tests
// ==========================

func TestStore_ResolveToken(t *testing.T) {
	client, mr := setupRedis(t)
	store := createStore(t, client)

	mr.Set("chatbot_session:tok-1", `{"id":"user-5","role":"staff","sections":[1,3]}`)

	user, err := store.ResolveToken(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, "user-5", user.ID)
	assert.Equal(t, "staff", user.Role)
	assert.Equal(t, []int{1, 3}, user.Sections)
}

func TestStore_ResolveToken_Unauthorized(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mr *miniredis.Miniredis)
		token string
	}{
		{"unknown token", func(*miniredis.Miniredis) {}, "tok-missing"},
		{"corrupt record", func(mr *miniredis.Miniredis) {
			mr.Set("chatbot_session:tok-bad", "{broken")
		}, "tok-bad"},
		{"record without id", func(mr *miniredis.Miniredis) {
			mr.Set("chatbot_session:tok-empty", `{"role":"staff"}`)
		}, "tok-empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupRedis(t)
			store := createStore(t, client)
			tt.setup(mr)

			user, err := store.ResolveToken(context.Background(), tt.token)

			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestStore_ResolveToken_RedisFaultIsUnauthorized(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := createStore(t, client)

	mock.ExpectGet("chatbot_session:tok-1").SetErr(errors.New("connection refused"))

	user, err := store.ResolveToken(context.Background(), "tok-1")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
