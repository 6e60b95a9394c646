package sso

import (
	"context"
	"encoding/json"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

// LogNotifier writes recovery messages to stdout. Useful in development when
// no broker is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg RecoveryMessage) error {
	fmt.Println("====== SENDING RECOVERY NOTIFICATION =======")
	fmt.Printf("to: %s\n", msg.Email)
	fmt.Printf("link: %s\n", msg.URL)
	return nil
}

// RedisNotifier publishes recovery messages as JSON to a redis channel. The
// emailer daemon on the other side owns rendering and delivery; from this
// side the publish is at-most-once and best-effort.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisNotifier creates a notifier publishing to the given channel.
func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

// NewRedisNotifierFromConfig dials the configured redis address and publishes
// to the configured channel.
func NewRedisNotifierFromConfig(cfg *EnvConfig) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	return NewRedisNotifier(client, cfg.RedisChannel)
}

func (n *RedisNotifier) Send(ctx context.Context, msg RecoveryMessage) error {
	if n.channel == "" {
		return goerrors.New("notification channel is not configured", goerrors.CategoryOperation)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode recovery message")
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to publish recovery message")
	}

	return nil
}

var (
	_ Notifier = LogNotifier{}
	_ Notifier = (*RedisNotifier)(nil)
)
