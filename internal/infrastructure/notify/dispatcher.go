package notify

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phanuelx/Education-App/internal/core/ports"
	"github.com/Phanuelx/Education-App/internal/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	sendTimeout    = 15 * time.Second
)

// ErrQueueFull is returned by Notify when the recipient's worker has no room.
var ErrQueueFull = errors.New("notification queue full")

// Sender delivers one notification through an external service.
type Sender interface {
	Send(ctx context.Context, n ports.Notification) error
}

// Dispatcher hands notifications to a fixed set of workers. Messages for the
// same recipient always land on the same worker, so they go out in order.
// Failed deliveries are logged and counted; nothing is retried.
type Dispatcher struct {
	workers []chan ports.Notification
	sender  Sender
	log     zerolog.Logger
}

var _ ports.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify queues n without blocking. It fails only when the queue is full.
func (d *Dispatcher) Notify(_ context.Context, n ports.Notification) error {
	idx := d.shardIndex(n.To)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	default:
		metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n ports.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(sendCtx, n)
	metrics.NotificationDeliveryDuration.WithLabelValues(string(n.Channel)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "failed").Inc()
		d.log.Error().Err(err).
			Str("channel", string(n.Channel)).
			Str("subject", n.Subject).
			Int("worker_id", workerID).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(string(n.Channel), "sent").Inc()
}
