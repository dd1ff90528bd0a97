package helpers

// Response DTOs. The API is read-only: auctions and bids are mutated solely
// by the reconciliation watchers.

type AuctionResponse struct {
	ID                     int64  `json:"id"`
	TokenID                string `json:"token_id"`
	AuctionAccountID       string `json:"auction_account_id"`
	Reserve                int64  `json:"reserve"`
	MinimumBid             int64  `json:"minimum_bid"`
	WinnerCanBid           bool   `json:"winner_can_bid"`
	Status                 string `json:"status"`
	StartTimestamp         string `json:"start_timestamp"`
	EndTimestamp           string `json:"end_timestamp"`
	WinningBid             int64  `json:"winning_bid"`
	WinningAccount         string `json:"winning_account"`
	WinningTimestamp       string `json:"winning_timestamp"`
	TransferTxID           string `json:"transfer_tx_id"`
	TransferTxHash         string `json:"transfer_tx_hash"`
	LastConsensusTimestamp string `json:"last_consensus_timestamp"`
	TokenImage             string `json:"token_image,omitempty"`
}

type BidResponse struct {
	AuctionID       int64  `json:"auction_id"`
	TransactionID   string `json:"transaction_id"`
	BidderAccountID string `json:"bidder_account_id"`
	Amount          int64  `json:"amount"`
	Timestamp       string `json:"timestamp"`
	Status          string `json:"status"`
	RefundTxID      string `json:"refund_tx_id,omitempty"`
	RefundTxHash    string `json:"refund_tx_hash,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
