package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"afroboost/internal/logger"
	"afroboost/internal/metrics"
	"afroboost/internal/reservation"
)

const queueKey = "notifications"

// CustomerDelay paces the customer send behind the coach one.
const CustomerDelay = 800 * time.Millisecond

// Job is one queued notification. Due is absolute so the worker honors the
// delay even after a restart.
type Job struct {
	Target  string    `json:"target"`
	URL     string    `json:"url"`
	Due     time.Time `json:"due"`
	Created time.Time `json:"created"`
}

type Dispatcher struct {
	redis    *redis.Client
	outbound Outbound
}

func New(redisAddr string, outbound Outbound) *Dispatcher {
	return &Dispatcher{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		outbound: outbound,
	}
}

// NewWithClient wires an existing redis client, used by tests.
func NewWithClient(client *redis.Client, outbound Outbound) *Dispatcher {
	return &Dispatcher{redis: client, outbound: outbound}
}

// Dispatch queues both sends for a persisted reservation: coach immediately
// when a coach number is configured, customer after CustomerDelay when they
// supplied one. Errors are logged only.
func (d *Dispatcher) Dispatch(ctx context.Context, res *reservation.Reservation, coachPhone string) {
	now := time.Now()

	if strings.TrimSpace(coachPhone) != "" {
		d.enqueue(ctx, Job{
			Target:  TargetCoach,
			URL:     WhatsAppLink(coachPhone, BuildMessage(TargetCoach, res)),
			Due:     now,
			Created: now,
		})
	}

	if strings.TrimSpace(res.UserWhatsapp) != "" {
		d.enqueue(ctx, Job{
			Target:  TargetCustomer,
			URL:     WhatsAppLink(res.UserWhatsapp, BuildMessage(TargetCustomer, res)),
			Due:     now.Add(CustomerDelay),
			Created: now,
		})
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, job Job) {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return
	}

	if err := d.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue %s notification: %v", job.Target, err)
		return
	}

	logger.Infof("Notification queued for %s", job.Target)
}

// Start runs the delivery loop until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	logger.Info("Notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification dispatcher stopped")
			return
		default:
			d.processNext(ctx)
		}
	}
}

func (d *Dispatcher) processNext(ctx context.Context) {
	result, err := d.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	if wait := time.Until(job.Due); wait > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	// Single attempt, no retry. A missed notification never unwinds the
	// reservation it announces.
	if err := d.outbound.Open(job.URL); err != nil {
		logger.Errorf("Failed to deliver %s notification: %v", job.Target, err)
		metrics.RecordNotification(job.Target, "failed")
	} else {
		metrics.RecordNotification(job.Target, "sent")
	}

	d.updateQueueGauge(ctx)
}

func (d *Dispatcher) updateQueueGauge(ctx context.Context) {
	length, err := d.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		return
	}
	metrics.NotificationQueueLength.Set(float64(length))
}

// QueueLength reports pending jobs, surfaced on the health endpoint.
func (d *Dispatcher) QueueLength(ctx context.Context) int64 {
	length, _ := d.redis.LLen(ctx, queueKey).Result()
	return length
}

func (d *Dispatcher) Close() error {
	return d.redis.Close()
}
