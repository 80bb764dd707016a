package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/api/metrics"
	"github.com/moderndash/dashboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher records login events on a fixed set of workers. Events are sharded
// by email so the last_login writes of one account are applied in order.
type Dispatcher struct {
	workers  []chan ports.LoginEvent
	recorder ports.LoginRecorder
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers; numWorkers <= 0 uses the default.
func NewDispatcher(numWorkers int, recorder ports.LoginRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.LoginEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LoginEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands event to its worker. It never blocks a login: when the worker
// channel is full the event is dropped and logged.
func (d *Dispatcher) Enqueue(event ports.LoginEvent) {
	idx := d.shardIndex(event.Email)
	select {
	case d.workers[idx] <- event:
		metrics.LoginQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("email", event.Email).
			Int("worker_id", idx).
			Msg("login queue full, dropping event")
	}
}

func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LoginEvent) {
	defer d.wg.Done()
	depth := metrics.LoginQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.recorder.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("email", event.Email).
					Int("worker_id", id).
					Msg("login event processing failed")
			}
		}
	}
}
