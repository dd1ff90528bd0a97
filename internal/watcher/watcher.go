// Package watcher contains the reconciliation loops that advance auctions
// through their lifecycle from the facts observable on the ledger. Per-auction
// watchers are goroutines supervised by auction id and phase; every mutation
// they make goes through the repositories' conditional updates, so two
// watchers racing on the same transition resolve to one winner and one no-op.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// Supervisor scans persisted auctions and keeps one watcher goroutine alive
// per auction and phase: readiness while pending, bids while active, end
// transfer while closed or transferring. Watchers exit when their phase does;
// the next scan spawns the follow-up phase. Because the scan works off the
// store, watchers resume correctly after a restart.
type Supervisor struct {
	auctions repository.AuctionStore
	bids     repository.BidStore
	provider mirror.Provider
	client   ledger.Client
	interval time.Duration

	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// NewSupervisor creates a supervisor polling auctions at the given interval.
func NewSupervisor(auctions repository.AuctionStore, bids repository.BidStore, provider mirror.Provider, client ledger.Client, interval time.Duration) *Supervisor {
	return &Supervisor{
		auctions: auctions,
		bids:     bids,
		provider: provider,
		client:   client,
		interval: interval,
		running:  make(map[string]struct{}),
	}
}

// Run blocks until the context is cancelled, then waits for all spawned
// watchers to finish their in-flight cycle.
func (s *Supervisor) Run(ctx context.Context) {
	utils.Info("watcher supervisor started", map[string]any{"interval": s.interval.String()})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.scan(ctx)
		select {
		case <-ctx.Done():
			s.wg.Wait()
			utils.Info("watcher supervisor stopped", nil)
			return
		case <-ticker.C:
		}
	}
}

func (s *Supervisor) scan(ctx context.Context) {
	auctions, err := s.auctions.ListByStatus(ctx,
		models.AuctionPending, models.AuctionActive, models.AuctionClosed, models.AuctionTransferring)
	if err != nil {
		utils.Error("supervisor: failed to list auctions", map[string]any{"error": err.Error()})
		return
	}

	for _, auction := range auctions {
		switch auction.Status {
		case models.AuctionPending:
			s.spawn(ctx, auction, "readiness", func(a models.Auction) runner {
				return NewReadinessWatcher(s.auctions, s.provider, a, s.interval)
			})
		case models.AuctionActive:
			s.spawn(ctx, auction, "bids", func(a models.Auction) runner {
				return NewBidWatcher(s.auctions, s.bids, s.provider, a, s.interval)
			})
		case models.AuctionClosed, models.AuctionTransferring:
			s.spawn(ctx, auction, "endtransfer", func(a models.Auction) runner {
				return NewEndTransferWatcher(s.auctions, s.provider, s.client, a, s.interval)
			})
		}
	}
}

type runner interface {
	Run(ctx context.Context)
}

func (s *Supervisor) spawn(ctx context.Context, auction models.Auction, phase string, build func(models.Auction) runner) {
	key := fmt.Sprintf("%d/%s", auction.ID, phase)

	s.mu.Lock()
	if _, ok := s.running[key]; ok {
		s.mu.Unlock()
		return
	}
	s.running[key] = struct{}{}
	s.mu.Unlock()

	w := build(auction)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.running, key)
			s.mu.Unlock()
		}()
		w.Run(ctx)
	}()
}

// sleep blocks for d or until the context is cancelled, reporting whether
// the caller should continue.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
