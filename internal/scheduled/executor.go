// Package scheduled executes ledger operations that need a separate
// authorization step before they take effect.
package scheduled

import (
	"context"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// rescheduleOffsetSeconds is how far an expired operation's transaction
// timestamp is advanced before the next attempt.
const rescheduleOffsetSeconds = 30

// Executor is the global loop over pending scheduled operations. Each
// operation is submitted as a scheduled transaction under the id derived from
// its stored timestamp (accountId@timestamp). Success marks it executing; an
// expired transaction id is rescheduled 30 seconds forward and retried on a
// tightened 1s cycle; any other failure records the ledger status on the row
// and leaves it pending. Non-expiry failures retry forever at the normal
// interval: there is deliberately no retry bound, operators watch the
// recorded status for operations that keep failing.
type Executor struct {
	auctions      repository.AuctionStore
	operations    repository.OperationStore
	client        ledger.Client
	interval      time.Duration
	retryInterval time.Duration
}

// NewExecutor creates the scheduled-operation loop.
func NewExecutor(auctions repository.AuctionStore, operations repository.OperationStore, client ledger.Client, interval time.Duration) *Executor {
	return &Executor{
		auctions:      auctions,
		operations:    operations,
		client:        client,
		interval:      interval,
		retryInterval: time.Second,
	}
}

// Run processes operations until the context is cancelled.
func (e *Executor) Run(ctx context.Context) {
	utils.Info("scheduled operation executor started", map[string]any{"interval": e.interval.String()})

	for {
		wait := e.interval
		if e.Cycle(ctx) {
			// an expiry was just rescheduled, retry promptly
			wait = e.retryInterval
		}

		select {
		case <-ctx.Done():
			utils.Info("scheduled operation executor stopped", nil)
			return
		case <-time.After(wait):
		}
	}
}

// Cycle submits every pending operation once, reporting whether any of them
// expired and was rescheduled.
func (e *Executor) Cycle(ctx context.Context) bool {
	pending, err := e.operations.ListPending(ctx)
	if err != nil {
		utils.Error("executor: failed to list pending operations", map[string]any{"error": err.Error()})
		return false
	}

	rescheduled := false
	for _, op := range pending {
		if op.TransactionType != models.OperationTokenAssociate {
			utils.Warn("executor: unknown operation type", map[string]any{
				"transaction_timestamp": op.TransactionTimestamp,
				"transaction_type":      op.TransactionType,
			})
			continue
		}
		if e.execute(ctx, op) {
			rescheduled = true
		}
		if ctx.Err() != nil {
			return rescheduled
		}
	}
	return rescheduled
}

// execute submits one token-associate operation, reporting whether it was
// rescheduled after an expiry.
func (e *Executor) execute(ctx context.Context, op models.ScheduledOperation) bool {
	auction, err := e.auctions.GetByID(ctx, op.AuctionID)
	if err != nil {
		utils.Error("executor: failed to load auction for operation", map[string]any{
			"auction_id":            op.AuctionID,
			"transaction_timestamp": op.TransactionTimestamp,
			"error":                 err.Error(),
		})
		return false
	}

	outcome, err := e.client.ScheduleTokenAssociate(ctx, auction.AuctionAccountID, auction.TokenID, op.TransactionTimestamp, op.Memo)
	if err != nil {
		utils.Warn("executor: submission failed, will retry", map[string]any{
			"transaction_timestamp": op.TransactionTimestamp,
			"error":                 err.Error(),
		})
		return false
	}

	switch {
	case outcome.Success:
		if err := e.operations.SetStatus(ctx, op.TransactionTimestamp, models.OperationExecuting, ""); err != nil {
			utils.Error("executor: failed to mark operation executing", map[string]any{
				"transaction_timestamp": op.TransactionTimestamp,
				"error":                 err.Error(),
			})
			return false
		}
		utils.Info("token associate transaction scheduled", map[string]any{
			"auction_id":     op.AuctionID,
			"transaction_id": op.TransactionID(auction.AuctionAccountID),
			"schedule_id":    outcome.ScheduleID,
		})
		return false

	case outcome.Expired:
		newTimestamp, err := models.AddSecondsToTimestamp(op.TransactionTimestamp, rescheduleOffsetSeconds)
		if err != nil {
			utils.Error("executor: failed to compute rescheduled timestamp", map[string]any{
				"transaction_timestamp": op.TransactionTimestamp,
				"error":                 err.Error(),
			})
			return false
		}
		if err := e.operations.Reschedule(ctx, op.TransactionTimestamp, newTimestamp); err != nil {
			utils.Error("executor: failed to reschedule operation", map[string]any{
				"transaction_timestamp": op.TransactionTimestamp,
				"error":                 err.Error(),
			})
			return false
		}
		utils.Info("token associate transaction re-scheduled", map[string]any{
			"auction_id":    op.AuctionID,
			"old_timestamp": op.TransactionTimestamp,
			"new_timestamp": newTimestamp,
		})
		return true

	default:
		if err := e.operations.SetStatus(ctx, op.TransactionTimestamp, models.OperationPending, outcome.Status); err != nil {
			utils.Error("executor: failed to record failure status", map[string]any{
				"transaction_timestamp": op.TransactionTimestamp,
				"error":                 err.Error(),
			})
			return false
		}
		utils.Error("executor: scheduling failed, left pending", map[string]any{
			"auction_id":            op.AuctionID,
			"transaction_timestamp": op.TransactionTimestamp,
			"status":                outcome.Status,
		})
		return false
	}
}
