package watcher

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// ClosureWatcher is the single authority for ending bidding. It periodically
// scans all active auctions and closes those whose end timestamp has passed.
// Bid watchers never self-terminate on time, so a bid can only race this scan:
// the scan interval is the documented upper bound on how late after the end
// timestamp a bid can still be accepted.
type ClosureWatcher struct {
	auctions repository.AuctionStore
	interval time.Duration
	now      func() time.Time
}

// NewClosureWatcher creates the global closure loop.
func NewClosureWatcher(auctions repository.AuctionStore, interval time.Duration) *ClosureWatcher {
	return &ClosureWatcher{
		auctions: auctions,
		interval: interval,
		now:      time.Now,
	}
}

// Run scans until the context is cancelled.
func (w *ClosureWatcher) Run(ctx context.Context) {
	utils.Info("closure watcher started", map[string]any{"interval": w.interval.String()})

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Scan(ctx)
		select {
		case <-ctx.Done():
			utils.Info("closure watcher stopped", nil)
			return
		case <-ticker.C:
		}
	}
}

// Scan closes every active auction whose end timestamp has passed.
func (w *ClosureWatcher) Scan(ctx context.Context) {
	active, err := w.auctions.ListByStatus(ctx, models.AuctionActive)
	if err != nil {
		utils.Error("closure: failed to list active auctions", map[string]any{"error": err.Error()})
		return
	}

	now := models.TimestampFrom(w.now())
	for _, auction := range active {
		if auction.EndTimestamp == "" {
			continue
		}
		if models.CompareTimestamps(auction.EndTimestamp, now) > 0 {
			continue
		}

		changed, err := w.auctions.SetClosed(ctx, auction.ID)
		if err != nil {
			utils.Error("closure: failed to close auction", map[string]any{
				"auction_id": auction.ID,
				"error":      err.Error(),
			})
			continue
		}
		if changed {
			utils.Info("auction closed", map[string]any{
				"auction_id":    auction.ID,
				"end_timestamp": auction.EndTimestamp,
			})
		}
	}
}
