package scheduled

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auction.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func seedOperation(t *testing.T, db *gorm.DB) (models.Auction, models.ScheduledOperation) {
	t.Helper()
	ctx := context.Background()

	auction := models.Auction{AuctionAccountID: "0.0.500", TokenID: "0.0.777"}
	require.NoError(t, repository.NewAuctionsRepository(db).Create(ctx, &auction))

	op := models.ScheduledOperation{
		TransactionTimestamp: "1617786650.000000000",
		AuctionID:            auction.ID,
		TransactionType:      models.OperationTokenAssociate,
		Memo:                 "auction setup",
	}
	require.NoError(t, repository.NewOperationsRepository(db).Create(ctx, &op))
	return auction, op
}

func TestExecutorSuccessMarksExecuting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	operations := repository.NewOperationsRepository(db)
	_, op := seedOperation(t, db)

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		ScheduleTokenAssociate(gomock.Any(), "0.0.500", "0.0.777", op.TransactionTimestamp, "auction setup").
		Return(ledger.Outcome{Success: true, ScheduleID: "0.0.900"}, nil)

	e := NewExecutor(auctions, operations, client, time.Millisecond)
	require.False(t, e.Cycle(ctx))

	pending, err := operations.ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending, "executing operations are no longer pending")
}

func TestExecutorExpiryReschedulesThirtySecondsForward(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	operations := repository.NewOperationsRepository(db)
	_, op := seedOperation(t, db)

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		ScheduleTokenAssociate(gomock.Any(), "0.0.500", "0.0.777", op.TransactionTimestamp, "auction setup").
		Return(ledger.Outcome{Expired: true, Status: "TRANSACTION_EXPIRED"}, nil)

	e := NewExecutor(auctions, operations, client, time.Millisecond)
	require.True(t, e.Cycle(ctx), "an expiry requests the tightened retry interval")

	pending, err := operations.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "1617786680.000000000", pending[0].TransactionTimestamp)

	// the rescheduled attempt goes out under the new transaction id
	client.EXPECT().
		ScheduleTokenAssociate(gomock.Any(), "0.0.500", "0.0.777", "1617786680.000000000", "auction setup").
		Return(ledger.Outcome{Success: true}, nil)
	require.False(t, e.Cycle(ctx))
}

func TestExecutorFailureRecordsStatusAndStaysPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	operations := repository.NewOperationsRepository(db)
	_, op := seedOperation(t, db)

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		ScheduleTokenAssociate(gomock.Any(), "0.0.500", "0.0.777", op.TransactionTimestamp, "auction setup").
		Return(ledger.Outcome{Success: false, Status: "INVALID_SIGNATURE"}, nil)

	e := NewExecutor(auctions, operations, client, time.Millisecond)
	require.False(t, e.Cycle(ctx))

	pending, err := operations.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "non-expiry failures retry at the normal interval")
	require.Equal(t, "INVALID_SIGNATURE", pending[0].StatusMessage)
}

func TestExecutorTransportErrorLeavesOperationUntouched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	operations := repository.NewOperationsRepository(db)
	_, op := seedOperation(t, db)

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		ScheduleTokenAssociate(gomock.Any(), "0.0.500", "0.0.777", op.TransactionTimestamp, "auction setup").
		Return(ledger.Outcome{}, errors.New("connection reset"))

	e := NewExecutor(auctions, operations, client, time.Millisecond)
	require.False(t, e.Cycle(ctx))

	pending, err := operations.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Empty(t, pending[0].StatusMessage)
}

func TestExecutorSkipsUnknownOperationTypes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	operations := repository.NewOperationsRepository(db)

	op := models.ScheduledOperation{
		TransactionTimestamp: "100.000000000",
		AuctionID:            1,
		TransactionType:      "TOKENBURN",
	}
	require.NoError(t, operations.Create(ctx, &op))

	// no ledger call for an unknown type
	client := ledger.NewMockClient(ctrl)

	e := NewExecutor(auctions, operations, client, time.Millisecond)
	require.False(t, e.Cycle(ctx))
}
