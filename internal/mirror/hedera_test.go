package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const transactionsPage1 = `{
  "transactions": [
    {
      "consensus_timestamp": "1617786650.552347000",
      "transaction_id": "0.0.400-1617786640-000000000",
      "transaction_hash": "aGFzaDE=",
      "result": "SUCCESS",
      "transfers": [
        {"account": "0.0.400", "amount": -1000000},
        {"account": "0.0.500", "amount": 1000000}
      ]
    }
  ],
  "links": {"next": "/api/v1/transactions?account.id=0.0.500&timestamp=gt:1617786650.552347000"}
}`

const transactionsPage2 = `{
  "transactions": [
    {
      "consensus_timestamp": "1617786660.000000000",
      "transaction_id": "0.0.401-1617786655-000000000",
      "token_transfers": [
        {"account": "0.0.500", "token_id": "0.0.777", "amount": 1}
      ]
    }
  ],
  "links": {"next": null}
}`

func TestHederaProviderPoll(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/transactions", r.URL.Path)
		gotQuery = map[string]string{
			"account.id":      r.URL.Query().Get("account.id"),
			"transactiontype": r.URL.Query().Get("transactiontype"),
			"order":           r.URL.Query().Get("order"),
			"timestamp":       r.URL.Query().Get("timestamp"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(transactionsPage1))
	}))
	defer srv.Close()

	p := NewHederaProvider(srv.URL, srv.Client())
	page, err := p.Poll(context.Background(), Query{
		AccountID:       "0.0.500",
		TransactionType: TransactionTypeCryptoTransfer,
		StartTimestamp:  "1617786640.000000000",
	})
	require.NoError(t, err)

	require.Equal(t, "0.0.500", gotQuery["account.id"])
	require.Equal(t, "CRYPTOTRANSFER", gotQuery["transactiontype"])
	require.Equal(t, "asc", gotQuery["order"])
	require.Equal(t, "gt:1617786640.000000000", gotQuery["timestamp"])

	require.Len(t, page.Events, 1)
	require.Equal(t, "1617786650.552347000", page.Events[0].ConsensusTimestamp)
	require.Equal(t, int64(1000000), page.Events[0].CreditTo("0.0.500"))
	require.NotEmpty(t, page.NextLink)
}

func TestHederaProviderPollNoStartTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("timestamp"), "no watermark means no timestamp filter")
		_, _ = w.Write([]byte(transactionsPage2))
	}))
	defer srv.Close()

	p := NewHederaProvider(srv.URL, srv.Client())
	page, err := p.Poll(context.Background(), Query{AccountID: "0.0.500"})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	require.Empty(t, page.NextLink, "a null next link ends pagination")
}

func TestHederaProviderFollowsNextLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "gt:1617786650.552347000", r.URL.Query().Get("timestamp"))
		_, _ = w.Write([]byte(transactionsPage2))
	}))
	defer srv.Close()

	p := NewHederaProvider(srv.URL, srv.Client())
	page, err := p.Poll(context.Background(), Query{
		NextLink: "/api/v1/transactions?account.id=0.0.500&timestamp=gt:1617786650.552347000",
	})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	require.Equal(t, int64(1), page.Events[0].TokenCreditTo("0.0.500", "0.0.777"))
}

func TestHederaProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"_status":{"messages":[{"message":"Invalid parameter"}]}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewHederaProvider(srv.URL, srv.Client())
	_, err := p.Poll(context.Background(), Query{AccountID: "bogus"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestHederaProviderMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	p := NewHederaProvider(srv.URL, srv.Client())
	_, err := p.Poll(context.Background(), Query{AccountID: "0.0.500"})
	require.Error(t, err)
}
