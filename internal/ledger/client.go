// Package ledger submits approved payments as bills to a Cospend-compatible
// shared-expense service.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sift-dev/sift/internal/config"
	"github.com/sift-dev/sift/internal/model"
)

const defaultTimeout = 30 * time.Second

// Client wraps authenticated HTTP calls to the bill-creation endpoint.
// Submission is fire-and-forget per record: no retries, and a failure never
// aborts the batch.
type Client struct {
	httpClient *http.Client
	cfg        config.LedgerConfig
	logger     *zap.Logger
}

// NewClient creates a ledger client with a bounded request timeout.
func NewClient(cfg config.LedgerConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// billRequest is the bill-creation payload.
type billRequest struct {
	Amount        json.Number `json:"amount"`
	What          string      `json:"what"`
	Category      int         `json:"category"`
	Comment       string      `json:"comment"`
	PayedFor      []int       `json:"payed_for"`
	Payer         int         `json:"payer"`
	PaymentModeID int         `json:"paymentmodeid"`
	Repeat        string      `json:"repeat"`
	Timestamp     int64       `json:"timestamp"`
}

// CreateBill submits one approved payment. The response status and body are
// logged verbatim; no structured parsing of the response is attempted.
func (c *Client) CreateBill(ctx context.Context, p model.Payment) error {
	body, err := json.Marshal(c.billRequest(p))
	if err != nil {
		return fmt.Errorf("encoding bill: %w", err)
	}

	url := fmt.Sprintf("%s/index.php/apps/cospend/api-priv/projects/%s/bills", c.cfg.Domain, c.cfg.Project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("bill request failed",
			zap.String("what", p.PayeeFriendly),
			zap.Error(err),
		)
		return fmt.Errorf("posting bill: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("ledger returned non-2xx",
			zap.String("what", p.PayeeFriendly),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return fmt.Errorf("ledger returned status %d: %s", resp.StatusCode, respBody)
	}

	c.logger.Info("bill created",
		zap.String("what", p.PayeeFriendly),
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(respBody)),
	)
	return nil
}

func (c *Client) billRequest(p model.Payment) billRequest {
	category := 0
	if p.Category != nil {
		category = c.cfg.CategoryIDs[*p.Category]
	}

	return billRequest{
		Amount:        json.Number(decimal.New(p.Amount, -2).String()),
		What:          p.PayeeFriendly,
		Category:      category,
		Comment:       p.Reference,
		PayedFor:      c.cfg.PayedFor,
		Payer:         c.cfg.Payer,
		PaymentModeID: 0,
		Repeat:        "n",
		Timestamp:     midnight(p.Date).Unix(),
	}
}

// midnight pins a bill's timestamp to the start of the booking day.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
