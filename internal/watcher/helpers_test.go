package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"

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

func seedAuction(t *testing.T, db *gorm.DB, auction models.Auction) models.Auction {
	t.Helper()
	require.NoError(t, repository.NewAuctionsRepository(db).Create(context.Background(), &auction))
	return auction
}

// scriptedProvider serves fixed pages: initial queries resolve by start
// timestamp, follow-up queries by next link. Unknown queries get an empty page.
type scriptedProvider struct {
	byStart map[string]mirror.Page
	byLink  map[string]mirror.Page
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{
		byStart: make(map[string]mirror.Page),
		byLink:  make(map[string]mirror.Page),
	}
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Poll(_ context.Context, q mirror.Query) (mirror.Page, error) {
	if q.NextLink != "" {
		return p.byLink[q.NextLink], nil
	}
	return p.byStart[q.StartTimestamp], nil
}

// restTransactionID renders the payer-prefixed id the mirror REST surface
// uses, e.g. "0.0.401-100-2" for payer 0.0.401 at consensus time 100.2.
func restTransactionID(payer, ts string) string {
	return payer + "-" + strings.Replace(ts, ".", "-", 1)
}

// bidEvent builds a transfer event crediting the auction account from a
// bidder. The node fee debit is deliberately larger than typical test bid
// amounts; attribution must come from the transaction id, not the debits.
func bidEvent(ts, bidder, auctionAccount string, amount int64) mirror.Event {
	return mirror.Event{
		ConsensusTimestamp: ts,
		TransactionID:      restTransactionID(bidder, ts),
		TransactionHash:    "hash-" + ts,
		Transfers: []mirror.Transfer{
			{Account: "0.0.3", Amount: -100},
			{Account: bidder, Amount: -amount},
			{Account: auctionAccount, Amount: amount},
		},
	}
}

// tokenEvent builds a transfer event moving one unit of the token into account.
func tokenEvent(ts, from, account, tokenID string) mirror.Event {
	return mirror.Event{
		ConsensusTimestamp: ts,
		TransactionID:      restTransactionID(from, ts),
		TransactionHash:    "hash-" + ts,
		TokenTransfers: []mirror.TokenTransfer{
			{Account: from, TokenID: tokenID, Amount: -1},
			{Account: account, TokenID: tokenID, Amount: 1},
		},
	}
}
