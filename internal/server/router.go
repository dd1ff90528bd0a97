package server

import (
	handler "github.com/topshef/hedera-nft-auction-demo/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the read-only API. The
// reconciliation state machine is driven entirely by the watchers; the API
// issues no mutations.
func SetupRouter(auctions handler.AuctionReaderInterface, bids handler.BidReaderInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging with request ids

	auctionHandler := handler.NewAuctionHandler(auctions, bids)

	v1 := router.Group("/v1")
	{
		v1.GET("/status", auctionHandler.GetStatusHandler)

		v1.GET("/auctions", auctionHandler.GetAuctionsHandler)
		v1.GET("/auctions/last", auctionHandler.GetLastAuctionHandler)
		v1.GET("/auctions/:auction_id", auctionHandler.GetAuctionHandler)
		v1.GET("/auctions/:auction_id/bids", auctionHandler.GetAuctionBidsHandler)
	}

	return router
}
