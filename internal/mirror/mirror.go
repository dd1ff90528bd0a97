// Package mirror abstracts the external transaction index (mirror node) the
// watchers poll. Providers are registered by name and selected at
// configuration time; a registered-but-unimplemented provider yields an
// explicit unsupported error so "no events" and "no source" stay distinct.
package mirror

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/topshef/hedera-nft-auction-demo/internal/auctionerrors"
)

// Transaction type filter values understood by the feed.
const (
	TransactionTypeCryptoTransfer = "CRYPTOTRANSFER"
)

// Query describes one poll of the feed. StartTimestamp is exclusive: only
// events strictly after it are returned, which is how callers resume from a
// persisted watermark. NextLink, when set, overrides the other fields and
// continues a prior page; it is provider-opaque and never persisted.
type Query struct {
	AccountID       string
	TransactionType string
	StartTimestamp  string
	NextLink        string
}

// Transfer is a single balance change within a transaction, in tinybars.
// Negative amounts are debits from the account.
type Transfer struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// TokenTransfer is a token balance change within a transaction.
type TokenTransfer struct {
	Account string `json:"account"`
	TokenID string `json:"token_id"`
	Amount  int64  `json:"amount"`
}

// Event is one consensus-ordered transaction observed by the feed.
type Event struct {
	ConsensusTimestamp string          `json:"consensus_timestamp"`
	TransactionID      string          `json:"transaction_id"`
	TransactionHash    string          `json:"transaction_hash"`
	Result             string          `json:"result"`
	Memo               string          `json:"memo_base64"`
	Transfers          []Transfer      `json:"transfers"`
	TokenTransfers     []TokenTransfer `json:"token_transfers"`
}

// CreditTo returns the amount the event credits to the given account.
func (e *Event) CreditTo(accountID string) int64 {
	var total int64
	for _, t := range e.Transfers {
		if t.Account == accountID && t.Amount > 0 {
			total += t.Amount
		}
	}
	return total
}

// Payer returns the account that originated the event, parsed from the
// payer-prefixed transaction id (shard.realm.num-seconds-nanos on the REST
// surface, shard.realm.num@seconds.nanos in SDK form). Debit amounts cannot
// identify the payer: node and fee debits in the same transaction can exceed
// the transfer itself.
func (e *Event) Payer() string {
	if i := strings.IndexAny(e.TransactionID, "-@"); i > 0 {
		return e.TransactionID[:i]
	}
	return ""
}

// TokenCreditTo returns the amount of the given token credited to the account.
func (e *Event) TokenCreditTo(accountID, tokenID string) int64 {
	var total int64
	for _, t := range e.TokenTransfers {
		if t.Account == accountID && t.TokenID == tokenID && t.Amount > 0 {
			total += t.Amount
		}
	}
	return total
}

// Page is one poll result. NextLink is non-empty when more events may follow
// beyond this page.
type Page struct {
	Events   []Event
	NextLink string
}

// Provider polls a concrete mirror implementation.
type Provider interface {
	Name() string
	Poll(ctx context.Context, q Query) (Page, error)
}

// NewProvider selects a provider implementation by name. Known-but-
// unimplemented providers (kabuto, dragonglass) and unknown names both
// return ErrProviderNotSupported; callers are expected to fail configuration,
// not to poll on.
func NewProvider(name, baseURL string, client *http.Client) (Provider, error) {
	switch strings.ToLower(name) {
	case "hedera":
		return NewHederaProvider(baseURL, client), nil
	case "kabuto", "dragonglass":
		return nil, fmt.Errorf("mirror provider %q: %w", name, auctionerrors.ErrProviderNotSupported)
	default:
		return nil, fmt.Errorf("unknown mirror provider %q: %w", name, auctionerrors.ErrProviderNotSupported)
	}
}
