package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tesloshop/catalog-api/internal/api/metrics"
	"github.com/tesloshop/catalog-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher routes access-decision events to a fixed set of workers
// using consistent hashing on the user id, keeping per-user audit entries
// ordered. Recording is fire-and-forget: a full channel drops the event
// rather than blocking the request path.
type AuditDispatcher struct {
	workers []chan domain.AccessEvent
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AccessEvent, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event to the worker responsible for its user id.
func (d *AuditDispatcher) Record(event domain.AccessEvent) {
	select {
	case d.workers[d.shardIndex(event.UserID)] <- event:
	default:
		metrics.AuditDroppedTotal.Inc()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			roles := make([]string, 0, len(event.Roles))
			for _, r := range event.Roles {
				roles = append(roles, string(r))
			}
			d.log.Info().
				Int("worker_id", id).
				Str("user_id", event.UserID).
				Str("email", event.Email).
				Strs("roles", roles).
				Str("method", event.Method).
				Str("route", event.Route).
				Str("decision", string(event.Decision)).
				Str("reason", event.Reason).
				Time("at", event.Timestamp).
				Msg("access decision")
			metrics.AccessDecisionsTotal.WithLabelValues(string(event.Decision), event.Route).Inc()
		}
	}
}
