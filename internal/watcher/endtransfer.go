package watcher

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// resubmitAfterCycles is how many confirmation polls to wait before assuming
// the closing transfer was lost and submitting it again.
const resubmitAfterCycles = 6

// EndTransferWatcher drives a closed auction to ended: it submits the token
// transfer to the winner (or back to the token owner when no valid winner
// exists), then polls the mirror until the transfer is visible. A closed
// auction must eventually end, so failures retry rather than abandon.
type EndTransferWatcher struct {
	auctions repository.AuctionStore
	provider mirror.Provider
	client   ledger.Client
	auction  models.Auction
	interval time.Duration
}

// NewEndTransferWatcher creates a watcher for a closed or transferring auction.
func NewEndTransferWatcher(auctions repository.AuctionStore, provider mirror.Provider, client ledger.Client, auction models.Auction, interval time.Duration) *EndTransferWatcher {
	return &EndTransferWatcher{
		auctions: auctions,
		provider: provider,
		client:   client,
		auction:  auction,
		interval: interval,
	}
}

// Run loops until the auction is ended or the context is cancelled.
func (w *EndTransferWatcher) Run(ctx context.Context) {
	utils.Info("end transfer watcher started", map[string]any{
		"auction_id": w.auction.ID,
		"token":      w.auction.TokenID,
	})

	unconfirmedCycles := 0
	for {
		auction, err := w.auctions.GetByID(ctx, w.auction.ID)
		if err != nil {
			utils.Error("endtransfer: failed to load auction", map[string]any{
				"auction_id": w.auction.ID,
				"error":      err.Error(),
			})
		} else {
			switch auction.Status {
			case models.AuctionClosed:
				w.submit(ctx, auction)
				unconfirmedCycles = 0
			case models.AuctionTransferring:
				if w.confirm(ctx, auction) {
					return
				}
				unconfirmedCycles++
				if unconfirmedCycles >= resubmitAfterCycles {
					utils.Warn("endtransfer: transfer unconfirmed, resubmitting", map[string]any{
						"auction_id": auction.ID,
						"cycles":     unconfirmedCycles,
					})
					w.resubmit(ctx, auction)
					unconfirmedCycles = 0
				}
			default:
				// ended, or moved backwards by an administrative reset
				return
			}
		}

		if !sleep(ctx, w.interval) {
			return
		}
	}
}

// recipient picks the account the token goes to: the winner when one exists
// and met the reserve, otherwise back to the original token owner.
func (w *EndTransferWatcher) recipient(auction models.Auction) string {
	if auction.HasValidWinner() {
		return auction.WinningAccount
	}
	return auction.TokenOwnerAccountID
}

// submit issues the closing transfer and moves the auction to transferring.
func (w *EndTransferWatcher) submit(ctx context.Context, auction models.Auction) {
	to := w.recipient(auction)
	if to == "" {
		// no winner and no recorded owner: nothing to transfer
		if _, err := w.auctions.SetEnded(ctx, auction.ID, ""); err != nil {
			utils.Error("endtransfer: failed to end auction", map[string]any{
				"auction_id": auction.ID,
				"error":      err.Error(),
			})
			return
		}
		utils.Warn("auction ended with no transfer recipient", map[string]any{"auction_id": auction.ID})
		return
	}

	outcome, err := w.client.TransferToken(ctx, auction.TokenID, auction.AuctionAccountID, to)
	if err != nil {
		utils.Warn("endtransfer: token transfer submission failed", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return
	}
	if !outcome.Success {
		utils.Error("endtransfer: token transfer not accepted", map[string]any{
			"auction_id": auction.ID,
			"status":     outcome.Status,
		})
		return
	}

	if _, err := w.auctions.SetTransferring(ctx, auction.ID, outcome.TransactionID); err != nil {
		utils.Error("endtransfer: failed to mark transferring", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return
	}
	utils.Info("closing token transfer submitted", map[string]any{
		"auction_id":     auction.ID,
		"transaction_id": outcome.TransactionID,
		"recipient":      to,
	})
}

// confirm looks for the transfer on the mirror, scoped to events after the
// winning bid so earlier token movements cannot be mistaken for it, and ends
// the auction when found.
func (w *EndTransferWatcher) confirm(ctx context.Context, auction models.Auction) bool {
	to := w.recipient(auction)
	q := mirror.Query{
		AccountID:       auction.AuctionAccountID,
		TransactionType: mirror.TransactionTypeCryptoTransfer,
		StartTimestamp:  auction.WinningTimestamp,
	}

	for {
		page, err := w.provider.Poll(ctx, q)
		if err != nil {
			if ctx.Err() == nil {
				utils.Warn("endtransfer: mirror poll failed", map[string]any{
					"auction_id": auction.ID,
					"error":      err.Error(),
				})
			}
			return false
		}

		for _, event := range page.Events {
			if event.TokenCreditTo(to, auction.TokenID) > 0 {
				changed, err := w.auctions.SetEnded(ctx, auction.ID, event.TransactionHash)
				if err != nil {
					utils.Error("endtransfer: failed to end auction", map[string]any{
						"auction_id": auction.ID,
						"error":      err.Error(),
					})
					return false
				}
				if changed {
					utils.Info("auction ended, token transfer confirmed", map[string]any{
						"auction_id":       auction.ID,
						"transaction_hash": event.TransactionHash,
						"recipient":        to,
					})
				}
				return true
			}
		}

		if page.NextLink == "" {
			return false
		}
		q = mirror.Query{NextLink: page.NextLink}
	}
}

// resubmit re-issues the closing transfer for an auction stuck in
// transferring. A duplicate submission after the original succeeded fails on
// the ledger with a balance error, which is logged and otherwise harmless;
// the mirror confirmation still finds the original transfer.
func (w *EndTransferWatcher) resubmit(ctx context.Context, auction models.Auction) {
	to := w.recipient(auction)
	if to == "" {
		return
	}
	outcome, err := w.client.TransferToken(ctx, auction.TokenID, auction.AuctionAccountID, to)
	if err != nil {
		utils.Warn("endtransfer: resubmission failed", map[string]any{
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
		return
	}
	utils.Info("closing token transfer resubmitted", map[string]any{
		"auction_id": auction.ID,
		"status":     outcome.Status,
	})
}
