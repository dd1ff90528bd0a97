// Package ledger wraps outbound ledger operations. Every submission resolves
// to a definitive Outcome (success, expired, or a failure status code);
// returned errors are reserved for transport problems where the outcome is
// unknown and the caller should retry the whole submission.
package ledger

import "context"

// Outcome is the definitive result of a ledger submission.
type Outcome struct {
	Success         bool
	Expired         bool
	Status          string
	TransactionID   string
	TransactionHash string
	ScheduleID      string
}

// Client submits transactions to the ledger.
type Client interface {
	// TransferHbar moves tinybars between two accounts, used for bid refunds.
	TransferHbar(ctx context.Context, fromAccountID, toAccountID string, amountTinybar int64, memo string) (Outcome, error)

	// TransferToken moves the full token balance from one account to another,
	// used for the closing transfer to the winner or back to the owner.
	TransferToken(ctx context.Context, tokenID, fromAccountID, toAccountID string) (Outcome, error)

	// ScheduleTokenAssociate submits a scheduled token-association transaction
	// for the account, under a transaction id derived from the given consensus
	// timestamp. The association itself takes effect once the counterparty
	// authorizes the schedule; Expired is set when the derived transaction id
	// fell out of its validity window before submission.
	ScheduleTokenAssociate(ctx context.Context, accountID, tokenID, transactionTimestamp, memo string) (Outcome, error)
}
