package service

import (
	"context"

	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"github.com/sandeshlamsal/eventpasal/internal/pricing"
	"golang.org/x/sync/errgroup"
)

const repairConcurrency = 4

// RepairService normalizes legacy ticket prices left outside the accepted
// band by earlier imports. Free events are never touched.
type RepairService struct {
	events EventStore
	logger observability.Logger
}

func NewRepairService(events EventStore, logger observability.Logger) *RepairService {
	return &RepairService{events: events, logger: logger}
}

// RepairPrices clamps every out-of-band stored price to the nearest bound
// and reports how many rows changed. The pass is idempotent; a second run
// finds nothing to fix.
func (s *RepairService) RepairPrices(ctx context.Context) (int, error) {
	rows, err := s.events.OutOfBandPrices(ctx, pricing.MinPrice, pricing.MaxPrice)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(repairConcurrency)

	repaired := 0
	results := make(chan struct{}, len(rows))
	for _, row := range rows {
		row := row
		g.Go(func() error {
			fixed, changed := pricing.Repair(row.Price)
			if !changed {
				return nil
			}
			if err := s.events.SetEventPrice(ctx, row.ID, fixed); err != nil {
				return err
			}
			s.logger.WithField("event_id", row.ID.String()).
				WithField("price", fixed).Info("repaired event price")
			results <- struct{}{}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	close(results)
	for range results {
		repaired++
	}
	return repaired, nil
}
