package worker

import (
	"context"
	"encoding/json"
	"time"

	"kenyadeals/dealworker/internal/crawler"
	"kenyadeals/dealworker/internal/report"
	"kenyadeals/dealworker/logger"
	"kenyadeals/dealworker/pkg/errors"
	"kenyadeals/dealworker/services/publisher"
)

// Worker runs the scrape cycle: crawl every shop in sequence, build
// the snapshot, write the artifacts and publish. In run-once mode it
// performs a single cycle (cron/CI); otherwise it loops on an interval
// until the context is cancelled.
type Worker struct {
	ctx        context.Context
	crawlers   []crawler.Crawler
	publisher  publisher.Publisher
	outputPath string
	reportPath string
	interval   time.Duration
	runOnce    bool
	log        *logger.Logger
}

// NewWorker creates a new worker. The publisher may be nil when
// publishing is disabled.
func NewWorker(
	ctx context.Context,
	crawlers []crawler.Crawler,
	pub publisher.Publisher,
	outputPath string,
	reportPath string,
	interval time.Duration,
	runOnce bool,
) *Worker {
	return &Worker{
		ctx:        ctx,
		crawlers:   crawlers,
		publisher:  pub,
		outputPath: outputPath,
		reportPath: reportPath,
		interval:   interval,
		runOnce:    runOnce,
		log:        logger.ForWorker(),
	}
}

// Start starts the worker process
func (w *Worker) Start() error {
	for {
		start := time.Now()
		w.RunCycle()
		w.log.Info().
			Dur("elapsed", time.Since(start)).
			Msg("Scrape cycle finished")

		if w.runOnce {
			return nil
		}

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}

// RunCycle performs one full scrape: shops are crawled one at a time,
// in configuration order. It returns the snapshot that was written.
func (w *Worker) RunCycle() crawler.Snapshot {
	var all []crawler.Product
	for _, c := range w.crawlers {
		all = append(all, c.FetchProducts()...)
	}

	snapshot := crawler.BuildSnapshot(all, time.Now())

	w.log.Info().
		Int("raw", len(all)).
		Int("items", snapshot.TotalItems).
		Msg("Snapshot built")

	if err := report.WriteSnapshot(w.outputPath, snapshot); err != nil {
		w.log.Error().Err(err).Str("path", w.outputPath).Msg("Failed to write snapshot")
	}

	if w.reportPath != "" {
		if err := report.WriteReport(w.reportPath, snapshot); err != nil {
			w.log.Error().Err(err).Str("path", w.reportPath).Msg("Failed to write report")
		}
	}

	w.publish(snapshot)

	return snapshot
}

// publish sends each accepted product to the stream, then trims it
func (w *Worker) publish(snapshot crawler.Snapshot) {
	if w.publisher == nil {
		return
	}

	for _, item := range snapshot.Items {
		data, err := json.Marshal(item)
		if err != nil {
			w.log.Error().Err(err).Msg("Failed to marshal product")
			continue
		}

		if err := w.publisher.Publish(item.Shop, data); err != nil {
			w.log.Error().
				Err(errors.NewPublisher(item.Shop, "publish failed", err)).
				Msg("Failed to publish product")
		}
	}

	if err := w.publisher.TrimStream(); err != nil {
		w.log.Error().
			Err(errors.NewPublisher("", "stream trim failed", err)).
			Msg("Failed to trim stream")
	}
}
