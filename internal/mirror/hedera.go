package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPollTimeout = 15 * time.Second

// HederaProvider polls the public Hedera mirror node REST API
// (/api/v1/transactions).
type HederaProvider struct {
	baseURL string
	client  *http.Client
}

// NewHederaProvider creates a provider for the given mirror base URL,
// e.g. "https://testnet.mirrornode.hedera.com".
func NewHederaProvider(baseURL string, client *http.Client) *HederaProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultPollTimeout}
	}
	return &HederaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *HederaProvider) Name() string {
	return "hedera"
}

type hederaTransactionsResponse struct {
	Transactions []Event `json:"transactions"`
	Links        struct {
		Next string `json:"next"`
	} `json:"links"`
}

// Poll fetches one page of transactions. The mirror orders ascending so
// callers can advance their watermark as they walk the page.
func (p *HederaProvider) Poll(ctx context.Context, q Query) (Page, error) {
	target := p.baseURL + "/api/v1/transactions"
	if q.NextLink != "" {
		// links.next is a path with query, relative to the mirror host
		target = p.baseURL + q.NextLink
	} else {
		params := url.Values{}
		params.Set("account.id", q.AccountID)
		params.Set("order", "asc")
		if q.TransactionType != "" {
			params.Set("transactiontype", q.TransactionType)
		}
		if q.StartTimestamp != "" {
			params.Set("timestamp", "gt:"+q.StartTimestamp)
		}
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("mirror query %s: %w", target, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("mirror query %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page{}, fmt.Errorf("mirror query %s: status %d: %s", target, resp.StatusCode, string(body))
	}

	var parsed hederaTransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Page{}, fmt.Errorf("mirror response for %s: %w", target, err)
	}

	return Page{
		Events:   parsed.Transactions,
		NextLink: parsed.Links.Next,
	}, nil
}

var _ Provider = (*HederaProvider)(nil)
