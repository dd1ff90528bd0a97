package models

import "time"

// Auction statuses. Transitions are one-directional:
// pending -> active -> closed -> {transferring -> ended | ended}.
const (
	AuctionPending      = "PENDING"
	AuctionActive       = "ACTIVE"
	AuctionClosed       = "CLOSED"
	AuctionTransferring = "TRANSFERRING"
	AuctionEnded        = "ENDED"
)

// Bid statuses
const (
	BidValid         = "VALID"
	BidRefundPending = "REFUND_PENDING"
	BidRefundIssued  = "REFUND_ISSUED"
)

// Scheduled operation statuses and types
const (
	OperationPending   = "PENDING"
	OperationExecuting = "EXECUTING"

	OperationTokenAssociate = "TOKENASSOCIATE"
)

// Auction represents an auctioned token and the reconciliation state attached to it.
// Rows are created in PENDING status by the ingestion side and mutated only by the
// watchers through conditional repository updates.
type Auction struct {
	ID                     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID                string `gorm:"size:100;index" json:"token_id"`
	AuctionAccountID       string `gorm:"size:100;index" json:"auction_account_id"`
	TokenOwnerAccountID    string `gorm:"size:100" json:"token_owner_account_id"`
	Reserve                int64  `json:"reserve"`
	MinimumBid             int64  `json:"minimum_bid"`
	WinnerCanBid           bool   `json:"winner_can_bid"`
	Status                 string `gorm:"size:20;index" json:"status"`
	StartTimestamp         string `gorm:"size:40" json:"start_timestamp"`
	EndTimestamp           string `gorm:"size:40;index" json:"end_timestamp"`
	WinningBid             int64  `json:"winning_bid"`
	WinningAccount         string `gorm:"size:100" json:"winning_account"`
	WinningTimestamp       string `gorm:"size:40" json:"winning_timestamp"`
	WinningTxID            string `gorm:"size:120" json:"winning_tx_id"`
	WinningTxHash          string `gorm:"size:200" json:"winning_tx_hash"`
	TransferTxID           string `gorm:"size:120" json:"transfer_tx_id"`
	TransferTxHash         string `gorm:"size:200" json:"transfer_tx_hash"`
	LastConsensusTimestamp string `gorm:"size:40" json:"last_consensus_timestamp"`
	TokenImage             string `gorm:"size:500" json:"token_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasWinner reports whether a winning bid has been recorded at all.
func (a *Auction) HasWinner() bool {
	return a.WinningAccount != "" && a.WinningBid > 0
}

// HasValidWinner reports whether the recorded winner also met the reserve.
// An auction closing below reserve returns the token to its owner.
func (a *Auction) HasValidWinner() bool {
	return a.HasWinner() && a.WinningBid >= a.Reserve
}

// IsOpen reports whether the auction still participates in reconciliation.
func (a *Auction) IsOpen() bool {
	return a.Status != AuctionEnded
}

// Bid represents a transfer into the auction account, qualifying or not.
// Identity is (auction id, ledger transaction id) which makes recording
// idempotent against feed re-delivery. Bids are never deleted; superseded
// and rejected bids move through the refund sub-states.
type Bid struct {
	AuctionID          int64  `gorm:"primaryKey;autoIncrement:false" json:"auction_id"`
	TransactionID      string `gorm:"primaryKey;size:120" json:"transaction_id"`
	BidderAccountID    string `gorm:"size:100;index" json:"bidder_account_id"`
	Amount             int64  `json:"amount"`
	Timestamp          string `gorm:"size:40;index" json:"timestamp"`
	Status             string `gorm:"size:20;index" json:"status"`
	TransactionHash    string `gorm:"size:200" json:"transaction_hash"`
	RefundTxID         string `gorm:"size:120" json:"refund_tx_id"`
	RefundTxHash       string `gorm:"size:200" json:"refund_tx_hash"`
	TimestampForRefund string `gorm:"size:40;index" json:"timestamp_for_refund"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduledOperation is a ledger operation that needs a separate authorization
// step (currently only token association). The transaction timestamp doubles
// as identity and as the timestamp part of the derived transaction id
// (accountId@timestamp); rescheduling after expiry advances it.
type ScheduledOperation struct {
	TransactionTimestamp string `gorm:"primaryKey;size:40" json:"transaction_timestamp"`
	AuctionID            int64  `gorm:"index" json:"auction_id"`
	TransactionType      string `gorm:"size:30" json:"transaction_type"`
	Memo                 string `gorm:"size:100" json:"memo"`
	Status               string `gorm:"size:20;index" json:"status"`
	StatusMessage        string `gorm:"size:100" json:"status_message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionID derives the ledger transaction id for the operation,
// signed by the given payer account.
func (o *ScheduledOperation) TransactionID(accountID string) string {
	return accountID + "@" + o.TransactionTimestamp
}
