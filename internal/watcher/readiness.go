package watcher

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// ReadinessWatcher waits for the auctioned token to arrive in the auction
// account. Until that transfer is visible on the mirror the auction stays
// pending and no bids are accepted. On observing it the watcher flips the
// auction to active and exits; the bid watcher takes over from there.
type ReadinessWatcher struct {
	auctions repository.AuctionStore
	provider mirror.Provider
	auction  models.Auction
	interval time.Duration
}

// NewReadinessWatcher creates a watcher for a pending auction.
func NewReadinessWatcher(auctions repository.AuctionStore, provider mirror.Provider, auction models.Auction, interval time.Duration) *ReadinessWatcher {
	return &ReadinessWatcher{
		auctions: auctions,
		provider: provider,
		auction:  auction,
		interval: interval,
	}
}

// Run polls until the association transfer is seen or the context ends.
// Once a page reports "no match, more pages" the watcher follows the next
// link instead of re-scanning pages it has already checked.
func (w *ReadinessWatcher) Run(ctx context.Context) {
	utils.Info("watching auction account for token association", map[string]any{
		"auction_id": w.auction.ID,
		"account":    w.auction.AuctionAccountID,
		"token":      w.auction.TokenID,
	})

	nextLink := ""
	for {
		q := mirror.Query{
			AccountID:       w.auction.AuctionAccountID,
			TransactionType: mirror.TransactionTypeCryptoTransfer,
		}
		if nextLink != "" {
			q = mirror.Query{NextLink: nextLink}
		}

		page, err := w.provider.Poll(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			utils.Warn("readiness: mirror poll failed", map[string]any{
				"auction_id": w.auction.ID,
				"error":      err.Error(),
			})
		} else {
			if w.tokenAssociated(page) {
				changed, err := w.auctions.SetActive(ctx, w.auction.ID)
				if err != nil {
					utils.Error("readiness: failed to activate auction", map[string]any{
						"auction_id": w.auction.ID,
						"error":      err.Error(),
					})
					// fall through and retry the transition next tick
				} else {
					if changed {
						utils.Info("token associated, auction started", map[string]any{
							"auction_id": w.auction.ID,
							"token":      w.auction.TokenID,
						})
					}
					return
				}
			} else if page.NextLink != "" {
				nextLink = page.NextLink
			}
		}

		if !sleep(ctx, w.interval) {
			return
		}
	}
}

// tokenAssociated reports whether any event on the page moves the auctioned
// token into the auction account.
func (w *ReadinessWatcher) tokenAssociated(page mirror.Page) bool {
	for _, event := range page.Events {
		if event.TokenCreditTo(w.auction.AuctionAccountID, w.auction.TokenID) > 0 {
			return true
		}
	}
	return false
}
