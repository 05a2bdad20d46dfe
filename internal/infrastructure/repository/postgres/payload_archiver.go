package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

const (
	defaultArchiveBufferSize    = 256
	defaultArchiveBatchSize     = 50
	defaultArchiveFlushInterval = 2 * time.Second
	defaultArchiveWriteTimeout  = 5 * time.Second
)

type PayloadArchiverConfig struct {
	Logger        *logging.Logger
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

// PayloadArchiver queues raw pages and writes them in batches from a single goroutine.
// Archive never blocks: pages are dropped when the queue is full, and write failures are
// only logged.
type PayloadArchiver struct {
	repo          rawdata.Repository
	logger        *logging.Logger
	batchSize     int
	flushInterval time.Duration
	writeTimeout  time.Duration

	queue     chan rawdata.Payload
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64
}

func NewPayloadArchiver(repo rawdata.Repository, cfg PayloadArchiverConfig) *PayloadArchiver {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultArchiveBufferSize
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultArchiveBatchSize
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = defaultArchiveFlushInterval
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultArchiveWriteTimeout
	}

	a := &PayloadArchiver{
		repo:          repo,
		logger:        logger.Named("payload_archiver"),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		writeTimeout:  writeTimeout,
		queue:         make(chan rawdata.Payload, bufferSize),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *PayloadArchiver) Archive(ctx context.Context, payload rawdata.Payload) {
	select {
	case <-a.stop:
		return
	default:
	}

	select {
	case a.queue <- payload:
	default:
		dropped := a.dropped.Add(1)
		a.logger.WarnContext(ctx, "payload archive queue full, dropping page",
			"source", payload.Source,
			"endpoint", payload.Endpoint,
			"page", payload.Page,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns how many pages were discarded because the queue was full.
func (a *PayloadArchiver) Dropped() int64 {
	return a.dropped.Load()
}

// Close stops accepting pages, flushes what is queued and waits for the writer to finish.
func (a *PayloadArchiver) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		close(a.stop)
	})

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *PayloadArchiver) run() {
	defer close(a.done)

	ticker := time.NewTicker(a.flushInterval)
	defer ticker.Stop()

	batch := make([]rawdata.Payload, 0, a.batchSize)
	for {
		select {
		case payload := <-a.queue:
			batch = append(batch, payload)
			if len(batch) >= a.batchSize {
				batch = a.flush(batch)
			}
		case <-ticker.C:
			batch = a.flush(batch)
		case <-a.stop:
			for {
				select {
				case payload := <-a.queue:
					batch = append(batch, payload)
					if len(batch) >= a.batchSize {
						batch = a.flush(batch)
					}
				default:
					a.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes the batch and returns a fresh one; the written slice is not reused.
func (a *PayloadArchiver) flush(batch []rawdata.Payload) []rawdata.Payload {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()

	if err := a.repo.InsertMany(ctx, batch); err != nil {
		a.logger.Warn("archive provider payloads failed", "count", len(batch), "error", err)
	} else {
		a.logger.Debug("archived provider payloads", "count", len(batch))
	}

	return make([]rawdata.Payload, 0, a.batchSize)
}
