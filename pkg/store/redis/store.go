package redis

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/streamstats"
	"github.com/hyp3rd/streamstats/internal/constants"
	"github.com/hyp3rd/streamstats/internal/libs/serializer"
	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// SnapshotStore persists named digest snapshots in Redis, so a long-running
// aggregation survives process restarts.
type SnapshotStore struct {
	Client     *redis.Client
	serializer serializer.ISerializer
	prefix     string
}

// New creates a snapshot store with its own Redis client built from the given
// options. Snapshots are serialized with the default serializer and stored
// under the default key prefix; use NewWithClient for full control.
func New(opts ...Option) (*SnapshotStore, error) {
	opt := &redis.Options{
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout: constants.RedisDialTimeout,
			}

			return dialer.DialContext(ctx, network, addr)
		},
		DB:           0,
		MaxRetries:   constants.RedisClientMaxRetries,
		DialTimeout:  constants.RedisDialTimeout,
		ReadTimeout:  constants.RedisClientReadTimeout,
		WriteTimeout: constants.RedisClientWriteTimeout,
		PoolFIFO:     false,
		PoolSize:     constants.RedisClientPoolSize,
		MinIdleConns: constants.RedisClientMinIdleConns,
		PoolTimeout:  constants.RedisClientPoolTimeout,
	}

	ApplyOptions(opt, opts...)

	if strings.TrimSpace(opt.Addr) == "" {
		return nil, ewrap.New("redis address is empty")
	}

	return NewWithClient(redis.NewClient(opt), constants.DefaultSerializer, constants.RedisKeyPrefix)
}

// NewWithClient creates a snapshot store on an existing client. The
// serializerType selects a serializer from the default registry and prefix
// namespaces the snapshot keys.
func NewWithClient(client *redis.Client, serializerType, prefix string) (*SnapshotStore, error) {
	if client == nil {
		return nil, sentinel.ErrNilClient
	}

	if strings.TrimSpace(prefix) == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "prefix")
	}

	ser, err := serializer.New(serializerType)
	if err != nil {
		return nil, err
	}

	return &SnapshotStore{Client: client, serializer: ser, prefix: prefix}, nil
}

// key builds the Redis key for a snapshot name.
func (s *SnapshotStore) key(name string) string {
	return s.prefix + ":" + name
}

// Save serializes the given digest state and stores it under name.
func (s *SnapshotStore) Save(ctx context.Context, name string, state streamstats.DigestState) error {
	if strings.TrimSpace(name) == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "name")
	}

	data, err := s.serializer.Marshal(state)
	if err != nil {
		return err
	}

	err = s.Client.Set(ctx, s.key(name), data, 0).Err()
	if err != nil {
		return ewrap.Wrap(err, "save snapshot")
	}

	return nil
}

// Load fetches and deserializes the digest state stored under name.
//
// Fails with ErrSnapshotNotFound if no snapshot with that name exists.
func (s *SnapshotStore) Load(ctx context.Context, name string) (streamstats.DigestState, error) {
	var state streamstats.DigestState

	if strings.TrimSpace(name) == "" {
		return state, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "name")
	}

	data, err := s.Client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return state, sentinel.ErrSnapshotNotFound
		}

		return state, ewrap.Wrap(err, "load snapshot")
	}

	err = s.serializer.Unmarshal(data, &state)
	if err != nil {
		return state, err
	}

	return state, nil
}

// Delete removes the snapshot stored under name. Deleting a missing snapshot
// is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "name")
	}

	err := s.Client.Del(ctx, s.key(name)).Err()
	if err != nil {
		return ewrap.Wrap(err, "delete snapshot")
	}

	return nil
}

// List returns the names of all stored snapshots.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	var (
		names  []string
		cursor uint64
	)

	match := s.prefix + ":*"

	for {
		keys, next, err := s.Client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return nil, ewrap.Wrap(err, "list snapshots")
		}

		for _, key := range keys {
			names = append(names, strings.TrimPrefix(key, s.prefix+":"))
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return names, nil
}
