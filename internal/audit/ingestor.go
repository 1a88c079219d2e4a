package audit

import (
	"context"
	"time"

	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"github.com/nulzo/virtual-router-api/internal/store"
	"go.uber.org/zap"
)

// Ingestor handles the asynchronous persistence of resolution records. It
// never blocks the resolver: when the buffer is full, records are dropped
// with a warning.
type Ingestor interface {
	ports.ResolutionSink
	Start(ctx context.Context)
	Stop()
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	recChan   chan *ports.ResolutionRecord
	batchSize int
	flushTime time.Duration
}

func NewIngestor(logger *zap.Logger, repo store.Repository) Ingestor {
	return &ingestor{
		logger:    logger,
		repo:      repo,
		recChan:   make(chan *ports.ResolutionRecord, 10000),
		batchSize: 50,
		flushTime: 5 * time.Second,
	}
}

func (i *ingestor) Record(rec *ports.ResolutionRecord) {
	select {
	case i.recChan <- rec:
	default:
		i.logger.Warn("Audit buffer full, dropping resolution record", zap.String("id", rec.ID))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

func (i *ingestor) Stop() {
	close(i.recChan)
}

func (i *ingestor) worker(ctx context.Context) {
	batch := make([]*ports.ResolutionRecord, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		for _, rec := range batch {
			if err := i.repo.Resolutions().Log(context.Background(), rec); err != nil {
				i.logger.Error("Failed to persist resolution record", zap.String("id", rec.ID), zap.Error(err))
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec, ok := <-i.recChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()
			return
		}
	}
}
