package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"
	goredis "github.com/redis/go-redis/v9"

	"github.com/hyp3rd/streamstats"
	"github.com/hyp3rd/streamstats/internal/sentinel"
)

func TestNewRequiresAddress(t *testing.T) {
	store, err := New()
	assert.False(t, err == nil)
	assert.True(t, store == nil)
}

func TestNewWithClientValidation(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})

	store, err := NewWithClient(nil, "msgpack", "streamstats")
	assert.True(t, errors.Is(err, sentinel.ErrNilClient))
	assert.True(t, store == nil)

	store, err = NewWithClient(client, "msgpack", " ")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
	assert.True(t, store == nil)

	store, err = NewWithClient(client, "does-not-exist", "streamstats")
	assert.True(t, errors.Is(err, sentinel.ErrSerializerNotFound))
	assert.True(t, store == nil)

	store, err = NewWithClient(client, "msgpack", "streamstats")
	assert.NoError(t, err)
	assert.Equal(t, "streamstats:latency", store.key("latency"))
}

func TestSnapshotNameValidation(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})

	store, err := NewWithClient(client, "msgpack", "streamstats")
	assert.NoError(t, err)

	ctx := context.Background()

	err = store.Save(ctx, "", streamstats.DigestState{})
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))

	_, err = store.Load(ctx, " ")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))

	err = store.Delete(ctx, "")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
}
