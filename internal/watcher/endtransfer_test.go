package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestEndTransferSubmitToWinner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID:    "0.0.500",
		TokenOwnerAccountID: "0.0.100",
		TokenID:             "0.0.777",
		Reserve:             100,
		Status:              models.AuctionClosed,
		WinningAccount:      "0.0.402",
		WinningBid:          200,
		WinningTimestamp:    "100.4",
	})

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		TransferToken(gomock.Any(), "0.0.777", "0.0.500", "0.0.402").
		Return(ledger.Outcome{Success: true, TransactionID: "0.0.500@200.1"}, nil)

	w := NewEndTransferWatcher(auctions, newScriptedProvider(), client, auction, time.Millisecond)
	w.submit(ctx, auction)

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionTransferring, got.Status)
	require.Equal(t, "0.0.500@200.1", got.TransferTxID)
}

func TestEndTransferReturnsTokenBelowReserve(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID:    "0.0.500",
		TokenOwnerAccountID: "0.0.100",
		TokenID:             "0.0.777",
		Reserve:             1000,
		Status:              models.AuctionClosed,
		WinningAccount:      "0.0.402",
		WinningBid:          200, // winner exists but never met the reserve
	})

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		TransferToken(gomock.Any(), "0.0.777", "0.0.500", "0.0.100").
		Return(ledger.Outcome{Success: true, TransactionID: "0.0.500@200.1"}, nil)

	w := NewEndTransferWatcher(auctions, newScriptedProvider(), client, auction, time.Millisecond)
	w.submit(ctx, auction)

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionTransferring, got.Status)
}

func TestEndTransferNoRecipientEndsDirectly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID: "0.0.500",
		TokenID:          "0.0.777",
		Status:           models.AuctionClosed,
	})

	// no ledger call is expected at all
	client := ledger.NewMockClient(ctrl)

	w := NewEndTransferWatcher(auctions, newScriptedProvider(), client, auction, time.Millisecond)
	w.submit(ctx, auction)

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionEnded, got.Status)
}

func TestEndTransferSubmitFailureLeavesClosed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID:    "0.0.500",
		TokenOwnerAccountID: "0.0.100",
		TokenID:             "0.0.777",
		Status:              models.AuctionClosed,
	})

	client := ledger.NewMockClient(ctrl)
	client.EXPECT().
		TransferToken(gomock.Any(), "0.0.777", "0.0.500", "0.0.100").
		Return(ledger.Outcome{Success: false, Status: "INSUFFICIENT_PAYER_BALANCE"}, nil)

	w := NewEndTransferWatcher(auctions, newScriptedProvider(), client, auction, time.Millisecond)
	w.submit(ctx, auction)

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionClosed, got.Status, "failed submission retries next cycle")
}

func TestEndTransferConfirm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID:    "0.0.500",
		TokenOwnerAccountID: "0.0.100",
		TokenID:             "0.0.777",
		Reserve:             100,
		Status:              models.AuctionTransferring,
		WinningAccount:      "0.0.402",
		WinningBid:          200,
		WinningTimestamp:    "100.4",
	})

	provider := newScriptedProvider()
	provider.byStart["100.4"] = mirror.Page{Events: []mirror.Event{
		tokenEvent("200.1", auction.AuctionAccountID, "0.0.402", auction.TokenID),
	}}

	w := NewEndTransferWatcher(auctions, provider, ledger.NewMockClient(ctrl), auction, time.Millisecond)
	require.True(t, w.confirm(ctx, auction))

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionEnded, got.Status)
	require.Equal(t, "hash-200.1", got.TransferTxHash)
}

func TestEndTransferConfirmNotYetVisible(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := repository.NewAuctionsRepository(db)
	auction := seedAuction(t, db, models.Auction{
		AuctionAccountID: "0.0.500",
		TokenID:          "0.0.777",
		Reserve:          100,
		Status:           models.AuctionTransferring,
		WinningAccount:   "0.0.402",
		WinningBid:       200,
		WinningTimestamp: "100.4",
	})

	provider := newScriptedProvider()
	provider.byStart["100.4"] = mirror.Page{Events: []mirror.Event{
		// hbar movement only, the token has not landed yet
		bidEvent("200.1", "0.0.900", auction.AuctionAccountID, 5),
	}}

	w := NewEndTransferWatcher(auctions, provider, ledger.NewMockClient(ctrl), auction, time.Millisecond)
	require.False(t, w.confirm(ctx, auction))

	got, err := auctions.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionTransferring, got.Status)
}
