// Package refund returns superseded and rejected bids to their bidders.
package refund

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// Processor is the global refund loop. Each cycle it takes every
// refund-pending bid, oldest first per auction so no superseded bid can
// starve, submits the return transfer for the exact bid amount, and marks the
// bid refund-issued on success. Marking is conditional on refund-pending, so
// a replayed cycle can never pay a bidder twice.
type Processor struct {
	auctions repository.AuctionStore
	bids     repository.BidStore
	client   ledger.Client
	interval time.Duration
}

// NewProcessor creates the refund loop.
func NewProcessor(auctions repository.AuctionStore, bids repository.BidStore, client ledger.Client, interval time.Duration) *Processor {
	return &Processor{
		auctions: auctions,
		bids:     bids,
		client:   client,
		interval: interval,
	}
}

// Run processes refunds until the context is cancelled.
func (p *Processor) Run(ctx context.Context) {
	utils.Info("refund processor started", map[string]any{"interval": p.interval.String()})

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Cycle(ctx)
		select {
		case <-ctx.Done():
			utils.Info("refund processor stopped", nil)
			return
		case <-ticker.C:
		}
	}
}

// Cycle issues one pass over all refunds due. Failures leave the bid
// refund-pending for the next cycle.
func (p *Processor) Cycle(ctx context.Context) {
	due, err := p.bids.ListRefundDue(ctx)
	if err != nil {
		utils.Error("refund: failed to list refunds due", map[string]any{"error": err.Error()})
		return
	}

	// auction account ids rarely change; fetch each auction once per cycle
	accounts := make(map[int64]string)

	for _, bid := range due {
		account, ok := accounts[bid.AuctionID]
		if !ok {
			auction, err := p.auctions.GetByID(ctx, bid.AuctionID)
			if err != nil {
				utils.Error("refund: failed to load auction", map[string]any{
					"auction_id": bid.AuctionID,
					"error":      err.Error(),
				})
				continue
			}
			account = auction.AuctionAccountID
			accounts[bid.AuctionID] = account
		}

		p.refund(ctx, account, bid)

		if ctx.Err() != nil {
			return
		}
	}
}

func (p *Processor) refund(ctx context.Context, auctionAccountID string, bid models.Bid) {
	memo := "Refund for " + bid.TransactionID

	outcome, err := p.client.TransferHbar(ctx, auctionAccountID, bid.BidderAccountID, bid.Amount, memo)
	if err != nil {
		utils.Warn("refund: submission failed, will retry", map[string]any{
			"auction_id":     bid.AuctionID,
			"transaction_id": bid.TransactionID,
			"error":          err.Error(),
		})
		return
	}
	if !outcome.Success {
		utils.Error("refund: transfer not accepted, will retry", map[string]any{
			"auction_id":     bid.AuctionID,
			"transaction_id": bid.TransactionID,
			"status":         outcome.Status,
		})
		return
	}

	changed, err := p.bids.MarkRefundIssued(ctx, bid.AuctionID, bid.TransactionID, outcome.TransactionID, outcome.TransactionHash)
	if err != nil {
		utils.Error("refund: failed to mark refund issued", map[string]any{
			"auction_id":     bid.AuctionID,
			"transaction_id": bid.TransactionID,
			"error":          err.Error(),
		})
		return
	}
	if changed {
		utils.Info("refund issued", map[string]any{
			"auction_id":     bid.AuctionID,
			"transaction_id": bid.TransactionID,
			"bidder":         bid.BidderAccountID,
			"amount":         bid.Amount,
			"refund_tx_id":   outcome.TransactionID,
		})
	}
}
