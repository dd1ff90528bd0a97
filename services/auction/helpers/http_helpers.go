package helpers

import (
	"errors"
	"net/http"

	"github.com/topshef/hedera-nft-auction-demo/internal/auctionerrors"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/utils"
)

// MapErrorToHTTP maps domain/repository errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// AuctionToResponse converts a persisted auction into its API shape.
func AuctionToResponse(a models.Auction) AuctionResponse {
	return AuctionResponse{
		ID:                     a.ID,
		TokenID:                a.TokenID,
		AuctionAccountID:       a.AuctionAccountID,
		Reserve:                a.Reserve,
		MinimumBid:             a.MinimumBid,
		WinnerCanBid:           a.WinnerCanBid,
		Status:                 a.Status,
		StartTimestamp:         a.StartTimestamp,
		EndTimestamp:           a.EndTimestamp,
		WinningBid:             a.WinningBid,
		WinningAccount:         a.WinningAccount,
		WinningTimestamp:       a.WinningTimestamp,
		TransferTxID:           a.TransferTxID,
		TransferTxHash:         a.TransferTxHash,
		LastConsensusTimestamp: a.LastConsensusTimestamp,
		TokenImage:             a.TokenImage,
	}
}

// BidToResponse converts a persisted bid into its API shape.
func BidToResponse(b models.Bid) BidResponse {
	return BidResponse{
		AuctionID:       b.AuctionID,
		TransactionID:   b.TransactionID,
		BidderAccountID: b.BidderAccountID,
		Amount:          b.Amount,
		Timestamp:       b.Timestamp,
		Status:          b.Status,
		RefundTxID:      b.RefundTxID,
		RefundTxHash:    b.RefundTxHash,
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
