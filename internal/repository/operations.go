package repository

import (
	"context"
	"fmt"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"

	"gorm.io/gorm"
)

// OperationsRepository is the gorm-backed implementation of OperationStore.
type OperationsRepository struct {
	db *gorm.DB
}

// NewOperationsRepository creates a new scheduled operations repository instance
func NewOperationsRepository(db *gorm.DB) *OperationsRepository {
	return &OperationsRepository{db: db}
}

func (r *OperationsRepository) Create(ctx context.Context, op *models.ScheduledOperation) error {
	if op.Status == "" {
		op.Status = models.OperationPending
	}
	if err := r.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("create scheduled operation %s: %w", op.TransactionTimestamp, err)
	}
	return nil
}

// ListPending returns pending operations oldest first.
func (r *OperationsRepository) ListPending(ctx context.Context) ([]models.ScheduledOperation, error) {
	var ops []models.ScheduledOperation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.OperationPending).
		Order("transaction_timestamp ASC").
		Find(&ops).Error
	if err != nil {
		return nil, fmt.Errorf("list pending operations: %w", err)
	}
	return ops, nil
}

// SetStatus updates an operation's status and records the ledger status
// message so repeatedly failing operations stay visible to operators.
func (r *OperationsRepository) SetStatus(ctx context.Context, transactionTimestamp, status, message string) error {
	err := r.db.WithContext(ctx).Model(&models.ScheduledOperation{}).
		Where("transaction_timestamp = ?", transactionTimestamp).
		Updates(map[string]any{
			"status":         status,
			"status_message": message,
		}).Error
	if err != nil {
		return fmt.Errorf("set status for operation %s: %w", transactionTimestamp, err)
	}
	return nil
}

// Reschedule moves an expired operation to a later transaction timestamp,
// which also changes the transaction id it will be submitted under.
func (r *OperationsRepository) Reschedule(ctx context.Context, oldTimestamp, newTimestamp string) error {
	err := r.db.WithContext(ctx).Model(&models.ScheduledOperation{}).
		Where("transaction_timestamp = ?", oldTimestamp).
		Update("transaction_timestamp", newTimestamp).Error
	if err != nil {
		return fmt.Errorf("reschedule operation %s: %w", oldTimestamp, err)
	}
	return nil
}

// DeleteAll removes every scheduled operation. Administrative reset only.
func (r *OperationsRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.ScheduledOperation{}).Error; err != nil {
		return fmt.Errorf("delete all scheduled operations: %w", err)
	}
	return nil
}

var _ AuctionStore = (*AuctionsRepository)(nil)
var _ BidStore = (*BidsRepository)(nil)
var _ OperationStore = (*OperationsRepository)(nil)
