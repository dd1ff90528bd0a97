package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/services/auction/helpers"
	"github.com/topshef/hedera-nft-auction-demo/utils"

	"github.com/gin-gonic/gin"
)

// AuctionReaderInterface is the read-only auction access the API needs.
// Satisfied by repository.AuctionsRepository.
type AuctionReaderInterface interface {
	ListAll(ctx context.Context) ([]models.Auction, error)
	GetByID(ctx context.Context, id int64) (models.Auction, error)
	Last(ctx context.Context) (models.Auction, error)
}

// BidReaderInterface is the read-only bid access the API needs.
// Satisfied by repository.BidsRepository.
type BidReaderInterface interface {
	ListByAuction(ctx context.Context, auctionID int64) ([]models.Bid, error)
}

type AuctionHandler struct {
	auctions AuctionReaderInterface
	bids     BidReaderInterface
}

func NewAuctionHandler(auctions AuctionReaderInterface, bids BidReaderInterface) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, bids: bids}
}

// GetStatusHandler handles GET /v1/status
func (h *AuctionHandler) GetStatusHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, helpers.StatusResponse{Status: "ok"}, "service healthy")
}

// GetAuctionsHandler handles GET /v1/auctions
func (h *AuctionHandler) GetAuctionsHandler(c *gin.Context) {
	auctions, err := h.auctions.ListAll(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionsHandler: error retrieving auctions", map[string]any{"error": err.Error()})
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.AuctionToResponse(a))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(resp),
	})
}

// GetAuctionHandler handles GET /v1/auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("auction_id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid auction id: %w", err), "invalid auction id")
		utils.Warn("GetAuctionHandler: invalid auction id", map[string]any{"auction_id": c.Param("auction_id")})
		return
	}

	auction, err := h.auctions.GetByID(c.Request.Context(), id)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": id, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(auction), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auction.ID,
		"status":     auction.Status,
	})
}

// GetLastAuctionHandler handles GET /v1/auctions/last
func (h *AuctionHandler) GetLastAuctionHandler(c *gin.Context) {
	auction, err := h.auctions.Last(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetLastAuctionHandler: error retrieving auction", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(auction), "auction retrieved successfully")
	helpers.LogSuccess("GetLastAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auction.ID,
	})
}

// GetAuctionBidsHandler handles GET /v1/auctions/:auction_id/bids
func (h *AuctionHandler) GetAuctionBidsHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("auction_id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid auction id: %w", err), "invalid auction id")
		utils.Warn("GetAuctionBidsHandler: invalid auction id", map[string]any{"auction_id": c.Param("auction_id")})
		return
	}

	bids, err := h.bids.ListByAuction(c.Request.Context(), id)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionBidsHandler: error retrieving bids", map[string]any{"auction_id": id, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.BidToResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": id,
		"count":      len(resp),
	})
}
