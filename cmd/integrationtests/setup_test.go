package integrationtests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestRouter initializes the router against a throwaway sqlite database,
// seeded with the given auctions and bids.
func SetupTestRouter(t *testing.T, auctions []models.Auction, bids []models.Bid) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auction.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	ctx := context.Background()
	auctionRepo := repository.NewAuctionsRepository(db)
	bidRepo := repository.NewBidsRepository(db)

	for i := range auctions {
		require.NoError(t, auctionRepo.Create(ctx, &auctions[i]))
	}
	for i := range bids {
		_, err := bidRepo.Record(ctx, &bids[i])
		require.NoError(t, err)
	}

	return server.SetupRouter(auctionRepo, bidRepo)
}

// ExecuteRequestAndParse performs a GET against the router and parses the
// response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, url string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}
