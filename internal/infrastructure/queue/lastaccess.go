package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kardexlab/inventory-api/internal/api/metrics"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

type accessEvent struct {
	userID string
	at     time.Time
}

// Throttle decides whether a user's last access is due for persisting.
type Throttle interface {
	Allow(ctx context.Context, userID string) bool
}

// Recorder persists last-access timestamps off the request path. Events are
// routed to a fixed set of workers by hashing the user id, so writes for one
// user never race each other inside the process. The pipeline is lossy by
// contract: a full worker channel drops the event rather than block the
// request, and every downstream failure is swallowed.
type Recorder struct {
	workers  []chan accessEvent
	users    ports.UserRepository
	throttle Throttle
	log      zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, users ports.UserRepository, throttle Throttle, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers:  make([]chan accessEvent, numWorkers),
		users:    users,
		throttle: throttle,
		log:      log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan accessEvent, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues a last-access update for the user. Never blocks: under
// backpressure the event is dropped and counted.
func (r *Recorder) Record(userID string) {
	i := r.shardIndex(userID)
	select {
	case r.workers[i] <- accessEvent{userID: userID, at: time.Now().UTC()}:
		metrics.LastAccessQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(r.workers[i])))
	default:
		metrics.LastAccessDroppedTotal.Inc()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (r *Recorder) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan accessEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.LastAccessQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			r.persist(ctx, event)
		}
	}
}

// persist writes one last-access timestamp. The write uses its own timeout
// rather than any request context: the originating request may already be
// gone, and completing or dropping the write is equally safe.
func (r *Recorder) persist(ctx context.Context, event accessEvent) {
	if r.throttle != nil && !r.throttle.Allow(ctx, event.userID) {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.users.UpdateLastAccess(writeCtx, event.userID, event.at); err != nil {
		r.log.Debug().Err(err).
			Str("user_id", event.userID).
			Msg("last access update failed")
	}
}
