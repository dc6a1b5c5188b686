package redisbus

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "changes:"

// Notifier implements port.ChangeNotifier over Redis pub/sub. Every table
// gets its own channel under the changes: prefix. Delivery is at-most-once,
// which is enough because subscribers only use events to invalidate caches.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier returns a notifier backed by the given Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish announces a change of the table.
func (n *Notifier) Publish(ctx context.Context, table string) error {
	return n.rdb.Publish(ctx, channelPrefix+table, "1").Err()
}

// Subscribe runs fn on every published change of the table until the
// returned stop function is called or ctx is cancelled. fn runs on the
// subscription goroutine; keep it short.
func (n *Notifier) Subscribe(ctx context.Context, table string, fn func()) (func(), error) {
	sub := n.rdb.Subscribe(ctx, channelPrefix+table)
	// force the subscription to be established before returning
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()
	stop := func() {
		close(done)
		_ = sub.Close()
	}
	return stop, nil
}
