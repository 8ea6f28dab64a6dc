package service

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newCacheService(t *testing.T) (*UserCacheService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewUserCacheService(client, log), mr
}

func TestCacheUserRoundTrip(t *testing.T) {
	svc, mr := newCacheService(t)
	ctx := context.Background()

	event := UserCreatedEvent{
		ID:       11,
		FullName: "Karim Ahmed",
		Email:    "karim@example.com",
		Mobile:   "01711111111",
		UserType: "patient",
	}

	assert.NoError(t, svc.CacheUser(ctx, event))
	assert.True(t, mr.Exists("user_info:11"))

	got, err := svc.GetCachedUser(ctx, 11)
	assert.NoError(t, err)
	assert.Equal(t, &event, got)
}

func TestGetCachedUserMiss(t *testing.T) {
	svc, _ := newCacheService(t)

	got, err := svc.GetCachedUser(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheUserOverwrites(t *testing.T) {
	svc, _ := newCacheService(t)
	ctx := context.Background()

	assert.NoError(t, svc.CacheUser(ctx, UserCreatedEvent{ID: 11, FullName: "Old"}))
	assert.NoError(t, svc.CacheUser(ctx, UserCreatedEvent{ID: 11, FullName: "New"}))

	got, err := svc.GetCachedUser(ctx, 11)
	assert.NoError(t, err)
	assert.Equal(t, "New", got.FullName)
}
