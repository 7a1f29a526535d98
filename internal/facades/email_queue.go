package facades

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aprilmaraat/simple-account-api/internal/logger"
)

// emailJob is the queued form of a welcome notification.
type emailJob struct {
	To          string `json:"to"`
	DisplayName string `json:"display_name"`
}

// EmailQueueNotifier enqueues welcome notifications on a Redis list instead
// of delivering them inline. A separate EmailQueueWorker drains the list.
type EmailQueueNotifier struct {
	client *redis.Client
	key    string
}

// NewEmailQueueNotifier creates a queue-backed notifier using the given
// Redis list key.
func NewEmailQueueNotifier(client *redis.Client, key string) *EmailQueueNotifier {
	return &EmailQueueNotifier{client: client, key: key}
}

// Send enqueues the notification job.
func (n *EmailQueueNotifier) Send(ctx context.Context, toAddress, displayName string) error {
	data, err := json.Marshal(emailJob{To: toAddress, DisplayName: displayName})
	if err != nil {
		return err
	}

	err = n.client.LPush(ctx, n.key, data).Err()

	logger.Log.Infow(
		"email job enqueued",
		"key", n.key,
		"to", toAddress,
		"error", err,
	)

	return err
}

// Sender delivers a notification to an address. The queue worker delegates
// to it for actual delivery.
type Sender interface {
	Send(ctx context.Context, toAddress, displayName string) error
}

// EmailQueueWorker drains the email queue and delivers jobs through the
// underlying sender. Delivery failures are logged and the job is dropped;
// the queue carries best-effort notifications only.
type EmailQueueWorker struct {
	client *redis.Client
	key    string
	sender Sender
}

// NewEmailQueueWorker creates a worker over the given Redis list key.
func NewEmailQueueWorker(client *redis.Client, key string, sender Sender) *EmailQueueWorker {
	return &EmailQueueWorker{client: client, key: key, sender: sender}
}

// Run blocks draining the queue until ctx is cancelled.
func (w *EmailQueueWorker) Run(ctx context.Context) {
	logger.Log.Infow("email queue worker started", "key", w.key)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Infow("email queue worker stopped", "key", w.key)
			return
		default:
		}

		res, err := w.client.BRPop(ctx, time.Second, w.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			logger.Log.Errorw("failed to pop email job", "key", w.key, "error", err)
			continue
		}

		// BRPOP returns [key, value]
		if len(res) != 2 {
			continue
		}

		var job emailJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			logger.Log.Errorw("failed to decode email job", "key", w.key, "error", err)
			continue
		}

		if err := w.sender.Send(ctx, job.To, job.DisplayName); err != nil {
			logger.Log.Errorw("failed to deliver queued email", "to", job.To, "error", err)
		}
	}
}
