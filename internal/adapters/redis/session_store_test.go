package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests are skipped when Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func doctorSession(id string, expiresAt time.Time) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    "user-123",
		Name:      "Doc",
		Email:     "doc@example.com",
		Role:      domainauth.RoleDoctor,
		RoleName:  "Doctor",
		ClinicID:  "clinic-1",
		ExpiresAt: expiresAt,
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := doctorSession("test-session-1", time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.Equal(t, session.ClinicID, retrieved.ClinicID)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := doctorSession("test-session-delete", time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Get(ctx, session.ID)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, session.ID))

	_, err = store.Get(ctx, session.ID)
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := doctorSession("test-session-ttl", time.Now().Add(100*time.Millisecond))
	require.NoError(t, store.Save(ctx, session))

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	session := doctorSession("prefix-test", time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, session))

	exists := client.Exists(ctx, "test-prefix:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	retrieved, err := store.Get(ctx, "prefix-test")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	err := store.Save(context.Background(), doctorSession("", time.Now().Add(time.Hour)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	err := store.Save(context.Background(), doctorSession("expired-session", time.Now().Add(-time.Hour)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	_, err := store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}
