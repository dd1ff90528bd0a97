package repository

import (
	"context"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"

	"gorm.io/gorm"
)

// AuctionStore defines the auction persistence interface. State transitions are
// conditional updates ("set active only where pending"): when the condition no
// longer holds the call reports changed=false and the caller treats it as a
// no-op. That compare-and-set is the only concurrency control between watchers.
type AuctionStore interface {
	Create(ctx context.Context, auction *models.Auction) error
	GetByID(ctx context.Context, id int64) (models.Auction, error)
	Last(ctx context.Context) (models.Auction, error)
	ListAll(ctx context.Context) ([]models.Auction, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]models.Auction, error)
	SetActive(ctx context.Context, id int64) (bool, error)
	SetClosed(ctx context.Context, id int64) (bool, error)
	SetTransferring(ctx context.Context, id int64, transferTxID string) (bool, error)
	SetEnded(ctx context.Context, id int64, transferTxHash string) (bool, error)
	SetWinningBid(ctx context.Context, id int64, bid models.Bid) (bool, error)
	AdvanceWatermark(ctx context.Context, id int64, current, next string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// BidStore defines the bid persistence interface. Bids are keyed by
// (auctionID, transactionID) so recording is idempotent, and they only ever
// move forward through the refund sub-states.
type BidStore interface {
	Record(ctx context.Context, bid *models.Bid) (bool, error)
	ListByAuction(ctx context.Context, auctionID int64) ([]models.Bid, error)
	SupersedeValid(ctx context.Context, auctionID int64, exceptTxID, refundTimestamp string) (int64, error)
	NextRefundDue(ctx context.Context, auctionID int64) (models.Bid, error)
	ListRefundDue(ctx context.Context) ([]models.Bid, error)
	MarkRefundIssued(ctx context.Context, auctionID int64, transactionID, refundTxID, refundTxHash string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// OperationStore defines persistence for scheduled ledger operations.
type OperationStore interface {
	Create(ctx context.Context, op *models.ScheduledOperation) error
	ListPending(ctx context.Context) ([]models.ScheduledOperation, error)
	SetStatus(ctx context.Context, transactionTimestamp, status, message string) error
	Reschedule(ctx context.Context, oldTimestamp, newTimestamp string) error
	DeleteAll(ctx context.Context) error
}

// AutoMigrate creates or updates the schema for all reconciliation tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Auction{}, &models.Bid{}, &models.ScheduledOperation{})
}
