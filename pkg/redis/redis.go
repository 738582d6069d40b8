// Package redis provides a fieldz.Source that follows a Redis key using
// keyspace notifications.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zoobzio/fieldz"
)

// Source emits a Redis key's value whenever it is written. Keyspace
// notifications must be enabled on the server:
//
//	CONFIG SET notify-keyspace-events KEA
type Source struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Source.
type Option func(*Source)

// WithDB sets the database index used in the keyspace channel. Default: 0.
func WithDB(db int) Option {
	return func(s *Source) {
		s.db = db
	}
}

// New creates a Source for key.
func New(client *redis.Client, key string, opts ...Option) *Source {
	s := &Source{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Channel returns the keyspace notification channel for the key.
func (s *Source) Channel() string {
	return fmt.Sprintf("__keyspace@%d__:%s", s.db, s.key)
}

// Watch subscribes to the key's notifications, emits its current value (if
// set) and then re-reads the key after every write command.
func (s *Source) Watch(ctx context.Context) (<-chan []byte, error) {
	pubsub := s.client.Subscribe(ctx, s.Channel())

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to keyspace notifications: %w", err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		emit := func() bool {
			val, err := s.client.Get(ctx, s.key).Bytes()
			if err != nil {
				// Missing keys and transient read errors wait for the next write.
				return !errors.Is(err, context.Canceled)
			}
			select {
			case out <- val:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				switch msg.Payload {
				case "set", "setex", "psetex", "setnx", "setrange", "append", "getset":
					if !emit() {
						return
					}
				}
			}
		}
	}()

	return out, nil
}

// Ensure Source implements fieldz.Source.
var _ fieldz.Source = (*Source)(nil)
