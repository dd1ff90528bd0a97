package watcher

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/auctionerrors"
	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// BidWatcher reconciles transfers into an active auction's account into bids.
// Events are processed in ascending consensus order, keyed by ledger
// transaction id for idempotency, and the auction's watermark only moves past
// an event once that event is durably recorded. The watcher never ends the
// auction itself; it exits when the closure watcher has moved the auction out
// of active.
type BidWatcher struct {
	auctions repository.AuctionStore
	bids     repository.BidStore
	provider mirror.Provider
	auction  models.Auction
	interval time.Duration
}

// NewBidWatcher creates a watcher for an active auction.
func NewBidWatcher(auctions repository.AuctionStore, bids repository.BidStore, provider mirror.Provider, auction models.Auction, interval time.Duration) *BidWatcher {
	return &BidWatcher{
		auctions: auctions,
		bids:     bids,
		provider: provider,
		auction:  auction,
		interval: interval,
	}
}

// Run polls the feed until the auction leaves active or the context ends.
func (w *BidWatcher) Run(ctx context.Context) {
	utils.Info("watching auction account for bids", map[string]any{
		"auction_id": w.auction.ID,
		"account":    w.auction.AuctionAccountID,
	})

	for {
		auction, err := w.auctions.GetByID(ctx, w.auction.ID)
		if err != nil {
			utils.Error("bids: failed to load auction", map[string]any{
				"auction_id": w.auction.ID,
				"error":      err.Error(),
			})
			if !sleep(ctx, w.interval) {
				return
			}
			continue
		}
		if auction.Status != models.AuctionActive {
			utils.Info("auction no longer active, bid watcher exiting", map[string]any{
				"auction_id": auction.ID,
				"status":     auction.Status,
			})
			return
		}

		w.pollCycle(ctx, auction)

		if !sleep(ctx, w.interval) {
			return
		}
	}
}

// pollCycle walks all feed pages newer than the watermark.
func (w *BidWatcher) pollCycle(ctx context.Context, auction models.Auction) {
	q := mirror.Query{
		AccountID:       auction.AuctionAccountID,
		TransactionType: mirror.TransactionTypeCryptoTransfer,
		StartTimestamp:  auction.LastConsensusTimestamp,
	}

	for {
		page, err := w.provider.Poll(ctx, q)
		if err != nil {
			if ctx.Err() == nil {
				utils.Warn("bids: mirror poll failed", map[string]any{
					"auction_id": auction.ID,
					"error":      err.Error(),
				})
			}
			return
		}

		utils.Debug("bids: mirror page received", map[string]any{
			"auction_id": auction.ID,
			"events":     len(page.Events),
		})

		for _, event := range page.Events {
			updated, ok := w.processEvent(ctx, auction, event)
			if !ok {
				// watermark must stay behind the unprocessed event
				return
			}
			auction = updated
		}

		if page.NextLink == "" {
			return
		}
		q = mirror.Query{NextLink: page.NextLink}
	}
}

// processEvent records a single transfer event. It returns the refreshed
// in-memory auction view and whether processing may continue past this event.
func (w *BidWatcher) processEvent(ctx context.Context, auction models.Auction, event mirror.Event) (models.Auction, bool) {
	if event.ConsensusTimestamp == "" || event.TransactionID == "" {
		utils.Error("bids: malformed mirror event, halting cycle", map[string]any{
			"auction_id": auction.ID,
			"timestamp":  event.ConsensusTimestamp,
		})
		return auction, false
	}
	if models.CompareTimestamps(event.ConsensusTimestamp, auction.LastConsensusTimestamp) <= 0 {
		// already reconciled, feed re-delivered it
		return auction, true
	}

	amount := event.CreditTo(auction.AuctionAccountID)
	if amount == 0 {
		// not a bid: token movement or fee-only transaction
		return w.advance(ctx, auction, event.ConsensusTimestamp), true
	}

	bidder := event.Payer()
	if bidder == "" {
		utils.Error("bids: transfer event without payer, halting cycle", map[string]any{
			"auction_id":     auction.ID,
			"transaction_id": event.TransactionID,
		})
		return auction, false
	}

	bid := models.Bid{
		AuctionID:       auction.ID,
		TransactionID:   event.TransactionID,
		BidderAccountID: bidder,
		Amount:          amount,
		Timestamp:       event.ConsensusTimestamp,
		TransactionHash: event.TransactionHash,
	}

	if reason := w.rejectionReason(auction, bid); reason != nil {
		return w.recordRejected(ctx, auction, bid, reason.Error())
	}
	return w.recordWinning(ctx, auction, bid)
}

// rejectionReason applies the bidding rules, returning nil for a qualifying bid.
func (w *BidWatcher) rejectionReason(auction models.Auction, bid models.Bid) error {
	if bid.Amount < auction.MinimumBid {
		return auctionerrors.ErrBidBelowMinimum
	}
	if auction.HasWinner() {
		if !auction.WinnerCanBid && bid.BidderAccountID == auction.WinningAccount {
			return auctionerrors.ErrWinnerCannotBid
		}
		if bid.Amount <= auction.WinningBid {
			return auctionerrors.ErrBidBelowWinning
		}
	}
	return nil
}

// recordRejected stores a non-qualifying transfer for audit, immediately due
// for refund, then advances the watermark past it. A persistence failure
// halts the cycle so the watermark stays behind the unrecorded event.
func (w *BidWatcher) recordRejected(ctx context.Context, auction models.Auction, bid models.Bid, reason string) (models.Auction, bool) {
	bid.Status = models.BidRefundPending
	bid.TimestampForRefund = bid.Timestamp

	created, err := w.bids.Record(ctx, &bid)
	if err != nil {
		utils.Error("bids: failed to record rejected transfer, halting cycle", map[string]any{
			"auction_id":     auction.ID,
			"transaction_id": bid.TransactionID,
			"error":          err.Error(),
		})
		return auction, false
	}
	if created {
		utils.Info("transfer rejected, refund queued", map[string]any{
			"auction_id":     auction.ID,
			"transaction_id": bid.TransactionID,
			"bidder":         bid.BidderAccountID,
			"amount":         bid.Amount,
			"reason":         reason,
		})
	}
	return w.advance(ctx, auction, bid.Timestamp), true
}

// recordWinning supersedes the previous valid bid, records the new one, and
// updates the auction's winner fields together with the watermark in a single
// conditional row update. Any persistence failure halts the cycle so the
// watermark stays behind the unrecorded event.
func (w *BidWatcher) recordWinning(ctx context.Context, auction models.Auction, bid models.Bid) (models.Auction, bool) {
	if _, err := w.bids.SupersedeValid(ctx, auction.ID, bid.TransactionID, bid.Timestamp); err != nil {
		utils.Error("bids: failed to supersede previous bid, halting cycle", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return auction, false
	}

	bid.Status = models.BidValid
	if _, err := w.bids.Record(ctx, &bid); err != nil {
		utils.Error("bids: failed to record bid, halting cycle", map[string]any{
			"auction_id":     auction.ID,
			"transaction_id": bid.TransactionID,
			"error":          err.Error(),
		})
		return auction, false
	}

	changed, err := w.auctions.SetWinningBid(ctx, auction.ID, bid)
	if err != nil {
		utils.Error("bids: failed to update winning bid, halting cycle", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return auction, false
	}
	if !changed {
		// lost the conditional update: the bid was already applied on a
		// previous (crashed) cycle, or a higher bid landed first. Either way
		// the event is recorded, so the watermark may move past it.
		return w.advance(ctx, auction, bid.Timestamp), true
	}

	utils.Info("new winning bid", map[string]any{
		"auction_id":     auction.ID,
		"transaction_id": bid.TransactionID,
		"bidder":         bid.BidderAccountID,
		"amount":         bid.Amount,
	})
	auction.WinningBid = bid.Amount
	auction.WinningAccount = bid.BidderAccountID
	auction.WinningTimestamp = bid.Timestamp
	auction.WinningTxID = bid.TransactionID
	auction.WinningTxHash = bid.TransactionHash
	auction.LastConsensusTimestamp = bid.Timestamp
	return auction, true
}

// advance moves the watermark and mirrors the move on the in-memory view.
func (w *BidWatcher) advance(ctx context.Context, auction models.Auction, ts string) models.Auction {
	changed, err := w.auctions.AdvanceWatermark(ctx, auction.ID, auction.LastConsensusTimestamp, ts)
	if err != nil {
		utils.Error("bids: failed to advance watermark", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return auction
	}
	if changed {
		auction.LastConsensusTimestamp = ts
	}
	return auction
}
