package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/topshef/hedera-nft-auction-demo/internal/auctionerrors"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BidsRepository is the gorm-backed implementation of BidStore.
type BidsRepository struct {
	db *gorm.DB
}

// NewBidsRepository creates a new bids repository instance
func NewBidsRepository(db *gorm.DB) *BidsRepository {
	return &BidsRepository{db: db}
}

// Record inserts a bid if its (auction, transaction id) key is unseen.
// Re-delivery of the same ledger transaction is a no-op, reported as
// created=false so callers can skip already-processed events.
func (r *BidsRepository) Record(ctx context.Context, bid *models.Bid) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(bid)
	if result.Error != nil {
		return false, fmt.Errorf("record bid %s for auction %d: %w", bid.TransactionID, bid.AuctionID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByAuction returns all bids for an auction in ledger-timestamp order.
func (r *BidsRepository) ListByAuction(ctx context.Context, auctionID int64) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("timestamp ASC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("list bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// SupersedeValid marks every valid bid for the auction other than exceptTxID
// as refund pending. At most one row can match given the single-valid-bid
// invariant; the returned count lets callers observe the transition.
func (r *BidsRepository) SupersedeValid(ctx context.Context, auctionID int64, exceptTxID, refundTimestamp string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Bid{}).
		Where("auction_id = ? AND status = ? AND transaction_id <> ?", auctionID, models.BidValid, exceptTxID).
		Updates(map[string]any{
			"status":               models.BidRefundPending,
			"timestamp_for_refund": refundTimestamp,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("supersede valid bid for auction %d: %w", auctionID, result.Error)
	}
	return result.RowsAffected, nil
}

// NextRefundDue returns the oldest refund-pending bid for an auction.
// Oldest first prevents starvation of early superseded bids.
func (r *BidsRepository) NextRefundDue(ctx context.Context, auctionID int64) (models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ? AND status = ?", auctionID, models.BidRefundPending).
		Order("timestamp ASC").
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Bid{}, fmt.Errorf("next refund for auction %d: %w", auctionID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("next refund for auction %d: %w", auctionID, err)
	}
	return bid, nil
}

// ListRefundDue returns all refund-pending bids, grouped by auction and
// oldest first within each auction.
func (r *BidsRepository) ListRefundDue(ctx context.Context) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BidRefundPending).
		Order("auction_id ASC, timestamp ASC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("list refunds due: %w", err)
	}
	return bids, nil
}

// MarkRefundIssued finalizes a refund. Conditional on refund-pending so a
// replayed refund cycle can never issue twice for the same bid.
func (r *BidsRepository) MarkRefundIssued(ctx context.Context, auctionID int64, transactionID, refundTxID, refundTxHash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Bid{}).
		Where("auction_id = ? AND transaction_id = ? AND status = ?", auctionID, transactionID, models.BidRefundPending).
		Updates(map[string]any{
			"status":         models.BidRefundIssued,
			"refund_tx_id":   refundTxID,
			"refund_tx_hash": refundTxHash,
		})
	if result.Error != nil {
		return false, fmt.Errorf("mark refund issued for bid %s: %w", transactionID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAll removes every bid. Administrative reset only.
func (r *BidsRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Bid{}).Error; err != nil {
		return fmt.Errorf("delete all bids: %w", err)
	}
	return nil
}
