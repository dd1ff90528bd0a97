package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/topshef/hedera-nft-auction-demo/internal/auctionerrors"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"

	"gorm.io/gorm"
)

// AuctionsRepository is the gorm-backed implementation of AuctionStore.
type AuctionsRepository struct {
	db *gorm.DB
}

// NewAuctionsRepository creates a new auctions repository instance
func NewAuctionsRepository(db *gorm.DB) *AuctionsRepository {
	return &AuctionsRepository{db: db}
}

func (r *AuctionsRepository) Create(ctx context.Context, auction *models.Auction) error {
	if auction.Status == "" {
		auction.Status = models.AuctionPending
	}
	if err := r.db.WithContext(ctx).Create(auction).Error; err != nil {
		return fmt.Errorf("create auction for account %s: %w", auction.AuctionAccountID, err)
	}
	return nil
}

func (r *AuctionsRepository) GetByID(ctx context.Context, id int64) (models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).First(&auction, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", id, err)
	}
	return auction, nil
}

func (r *AuctionsRepository) Last(ctx context.Context) (models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).Order("id DESC").First(&auction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Auction{}, fmt.Errorf("get last auction: %w", auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("get last auction: %w", err)
	}
	return auction, nil
}

func (r *AuctionsRepository) ListAll(ctx context.Context) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

func (r *AuctionsRepository) ListByStatus(ctx context.Context, statuses ...string) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := r.db.WithContext(ctx).Where("status IN ?", statuses).Order("id ASC").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions by status %v: %w", statuses, err)
	}
	return auctions, nil
}

// SetActive transitions pending -> active. A concurrent transition loses the
// race and is reported as changed=false, never as an error.
func (r *AuctionsRepository) SetActive(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", id, models.AuctionPending).
		Update("status", models.AuctionActive)
	if result.Error != nil {
		return false, fmt.Errorf("set auction %d active: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetClosed transitions active -> closed, freezing the winner fields.
func (r *AuctionsRepository) SetClosed(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", id, models.AuctionActive).
		Update("status", models.AuctionClosed)
	if result.Error != nil {
		return false, fmt.Errorf("set auction %d closed: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetTransferring transitions closed -> transferring, recording the submitted
// transfer transaction id.
func (r *AuctionsRepository) SetTransferring(ctx context.Context, id int64, transferTxID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", id, models.AuctionClosed).
		Updates(map[string]any{
			"status":         models.AuctionTransferring,
			"transfer_tx_id": transferTxID,
		})
	if result.Error != nil {
		return false, fmt.Errorf("set auction %d transferring: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetEnded transitions closed or transferring -> ended. Closed is accepted so
// an auction with nothing to transfer can end without the intermediate state.
func (r *AuctionsRepository) SetEnded(ctx context.Context, id int64, transferTxHash string) (bool, error) {
	updates := map[string]any{"status": models.AuctionEnded}
	if transferTxHash != "" {
		updates["transfer_tx_hash"] = transferTxHash
	}
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status IN ?", id, []string{models.AuctionClosed, models.AuctionTransferring}).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("set auction %d ended: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetWinningBid records a new winning bid and advances the watermark to the
// bid's consensus timestamp in the same row update. The guard on winning_bid
// means a racing lower bid can never overwrite a higher one, and a closed
// auction's winner is immutable.
func (r *AuctionsRepository) SetWinningBid(ctx context.Context, id int64, bid models.Bid) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ? AND winning_bid < ?", id, models.AuctionActive, bid.Amount).
		Updates(map[string]any{
			"winning_bid":              bid.Amount,
			"winning_account":          bid.BidderAccountID,
			"winning_timestamp":        bid.Timestamp,
			"winning_tx_id":            bid.TransactionID,
			"winning_tx_hash":          bid.TransactionHash,
			"last_consensus_timestamp": bid.Timestamp,
		})
	if result.Error != nil {
		return false, fmt.Errorf("set winning bid for auction %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AdvanceWatermark moves last_consensus_timestamp from current to next.
// The compare-and-set keeps the watermark monotonic without a read lock:
// a stale writer fails the match and re-reads on its next cycle.
func (r *AuctionsRepository) AdvanceWatermark(ctx context.Context, id int64, current, next string) (bool, error) {
	if models.CompareTimestamps(next, current) <= 0 && current != "" {
		return false, nil
	}
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND last_consensus_timestamp = ?", id, current).
		Update("last_consensus_timestamp", next)
	if result.Error != nil {
		return false, fmt.Errorf("advance watermark for auction %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAll removes every auction. Administrative reset only.
func (r *AuctionsRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Auction{}).Error; err != nil {
		return fmt.Errorf("delete all auctions: %w", err)
	}
	return nil
}
