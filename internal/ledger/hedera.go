package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/models"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// HederaClient implements Client on top of the Hedera Go SDK. The operator
// key pays for and signs outbound transactions; the auction account key signs
// transfers out of auction accounts.
type HederaClient struct {
	client     *hedera.Client
	operatorID hedera.AccountID
	auctionKey hedera.PrivateKey
}

// NewHederaClient connects to the named network ("mainnet", "testnet",
// "previewnet") with the given operator credentials.
func NewHederaClient(network, operatorID, operatorKey, auctionKey string) (*HederaClient, error) {
	client, err := hedera.ClientForName(network)
	if err != nil {
		return nil, fmt.Errorf("ledger client for network %s: %w", network, err)
	}

	opID, err := hedera.AccountIDFromString(operatorID)
	if err != nil {
		return nil, fmt.Errorf("parse operator account id: %w", err)
	}
	opKey, err := hedera.PrivateKeyFromString(operatorKey)
	if err != nil {
		return nil, fmt.Errorf("parse operator key: %w", err)
	}
	aKey, err := hedera.PrivateKeyFromString(auctionKey)
	if err != nil {
		return nil, fmt.Errorf("parse auction key: %w", err)
	}

	client.SetOperator(opID, opKey)

	return &HederaClient{
		client:     client,
		operatorID: opID,
		auctionKey: aKey,
	}, nil
}

func (h *HederaClient) TransferHbar(ctx context.Context, fromAccountID, toAccountID string, amountTinybar int64, memo string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("ledger submission: %w", err)
	}
	from, err := hedera.AccountIDFromString(fromAccountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse from account %s: %w", fromAccountID, err)
	}
	to, err := hedera.AccountIDFromString(toAccountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse to account %s: %w", toAccountID, err)
	}

	tx, err := hedera.NewTransferTransaction().
		AddHbarTransfer(from, hedera.HbarFromTinybar(-amountTinybar)).
		AddHbarTransfer(to, hedera.HbarFromTinybar(amountTinybar)).
		SetTransactionMemo(memo).
		FreezeWith(h.client)
	if err != nil {
		return Outcome{}, fmt.Errorf("freeze hbar transfer: %w", err)
	}

	return h.execute(tx.Sign(h.auctionKey).Execute(h.client))
}

func (h *HederaClient) TransferToken(ctx context.Context, tokenID, fromAccountID, toAccountID string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("ledger submission: %w", err)
	}
	token, err := hedera.TokenIDFromString(tokenID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse token id %s: %w", tokenID, err)
	}
	from, err := hedera.AccountIDFromString(fromAccountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse from account %s: %w", fromAccountID, err)
	}
	to, err := hedera.AccountIDFromString(toAccountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse to account %s: %w", toAccountID, err)
	}

	tx, err := hedera.NewTransferTransaction().
		AddTokenTransfer(token, from, -1).
		AddTokenTransfer(token, to, 1).
		FreezeWith(h.client)
	if err != nil {
		return Outcome{}, fmt.Errorf("freeze token transfer: %w", err)
	}

	return h.execute(tx.Sign(h.auctionKey).Execute(h.client))
}

func (h *HederaClient) ScheduleTokenAssociate(ctx context.Context, accountID, tokenID, transactionTimestamp, memo string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("ledger submission: %w", err)
	}
	account, err := hedera.AccountIDFromString(accountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse account id %s: %w", accountID, err)
	}
	token, err := hedera.TokenIDFromString(tokenID)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse token id %s: %w", tokenID, err)
	}
	secs, nanos, err := models.ParseTimestamp(transactionTimestamp)
	if err != nil {
		return Outcome{}, fmt.Errorf("parse transaction timestamp: %w", err)
	}

	validStart := time.Unix(secs, nanos)
	txID := hedera.NewTransactionIDWithValidStart(account, validStart)

	associate := hedera.NewTokenAssociateTransaction().
		SetAccountID(account).
		SetTokenIDs(token).
		SetTransactionMemo(memo).
		SetMaxTransactionFee(hedera.NewHbar(100)).
		SetTransactionID(txID)

	scheduled, err := hedera.NewScheduleCreateTransaction().
		SetScheduledTransaction(associate)
	if err != nil {
		return Outcome{}, fmt.Errorf("build scheduled token associate: %w", err)
	}

	outcome, err := h.execute(scheduled.Execute(h.client))
	if err == nil && (outcome.Success || outcome.Expired) {
		outcome.TransactionID = txID.String()
	}
	return outcome, err
}

// execute resolves a transaction submission into an Outcome. Status-bearing
// SDK errors (precheck and receipt failures) are definitive outcomes; anything
// else is a transport error left for the caller to retry. Cancellation is
// checked before submission only; a transaction that reached the network is
// always resolved to a receipt.
func (h *HederaClient) execute(resp hedera.TransactionResponse, err error) (Outcome, error) {
	if err != nil {
		return outcomeFromError(err)
	}

	receipt, err := resp.GetReceipt(h.client)
	if err != nil {
		return outcomeFromError(err)
	}

	return Outcome{
		Success:         receipt.Status == hedera.StatusSuccess,
		Status:          receipt.Status.String(),
		TransactionID:   resp.TransactionID.String(),
		TransactionHash: hex.EncodeToString(resp.Hash),
		ScheduleID:      scheduleIDString(receipt),
	}, nil
}

func scheduleIDString(receipt hedera.TransactionReceipt) string {
	if receipt.ScheduleID == nil {
		return ""
	}
	return receipt.ScheduleID.String()
}

func outcomeFromError(err error) (Outcome, error) {
	var precheck hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		return Outcome{
			Expired: precheck.Status == hedera.StatusTransactionExpired,
			Status:  precheck.Status.String(),
		}, nil
	}
	var receiptErr hedera.ErrHederaReceiptStatus
	if errors.As(err, &receiptErr) {
		return Outcome{
			Expired: receiptErr.Status == hedera.StatusTransactionExpired,
			Status:  receiptErr.Status.String(),
		}, nil
	}
	return Outcome{}, fmt.Errorf("ledger submission: %w", err)
}

var _ Client = (*HederaClient)(nil)
