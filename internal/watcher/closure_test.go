package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestClosureWatcherClosesExpiredAuctions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auctions := repository.NewAuctionsRepository(db)

	now := time.Unix(1_700_000_000, 0)

	expired := seedAuction(t, db, models.Auction{
		Status:       models.AuctionActive,
		EndTimestamp: models.TimestampFrom(now.Add(-time.Minute)),
	})
	running := seedAuction(t, db, models.Auction{
		Status:       models.AuctionActive,
		EndTimestamp: models.TimestampFrom(now.Add(time.Hour)),
	})
	noEnd := seedAuction(t, db, models.Auction{
		Status: models.AuctionActive,
	})
	pendingExpired := seedAuction(t, db, models.Auction{
		Status:       models.AuctionPending,
		EndTimestamp: models.TimestampFrom(now.Add(-time.Minute)),
	})

	w := NewClosureWatcher(auctions, time.Millisecond)
	w.now = func() time.Time { return now }
	w.Scan(ctx)

	for _, tc := range []struct {
		name string
		id   int64
		want string
	}{
		{name: "expired_active_closes", id: expired.ID, want: models.AuctionClosed},
		{name: "running_stays_active", id: running.ID, want: models.AuctionActive},
		{name: "no_end_timestamp_stays_active", id: noEnd.ID, want: models.AuctionActive},
		{name: "pending_is_not_closed", id: pendingExpired.ID, want: models.AuctionPending},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := auctions.GetByID(ctx, tc.id)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Status)
		})
	}
}

func TestClosureWatcherScanIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auctions := repository.NewAuctionsRepository(db)

	now := time.Unix(1_700_000_000, 0)
	auction := seedAuction(t, db, models.Auction{
		Status:       models.AuctionActive,
		EndTimestamp: models.TimestampFrom(now.Add(-time.Minute)),
	})

	w := NewClosureWatcher(auctions, time.Millisecond)
	w.now = func() time.Time { return now }
	w.Scan(ctx)
	w.Scan(ctx)

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionClosed, got.Status)
}
