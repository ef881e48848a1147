package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/warranty"
)

// LogNotifier writes expiry alerts to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, user *model.User, product *model.Product, daysLeft int) error {
	slog.Info("warranty expiring",
		"user", user.Name,
		"email", user.Email,
		"product", product.Name,
		"expiry_date", product.ExpiryDate.Format(warranty.DateLayout),
		"days_left", daysLeft,
	)
	return nil
}

// WebhookNotifier POSTs expiry alerts as JSON to an external endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier targeting url.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ExpiryDate  string `json:"expiry_date"`
	DaysLeft    int    `json:"days_left"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, user *model.User, product *model.Product, daysLeft int) error {
	body, err := json.Marshal(webhookPayload{
		UserID:      user.ID,
		UserName:    user.Name,
		Email:       user.Email,
		ProductID:   product.ID,
		ProductName: product.Name,
		ExpiryDate:  product.ExpiryDate.Format(warranty.DateLayout),
		DaysLeft:    daysLeft,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// MultiNotifier fans an alert out to several sinks; a failing sink does not
// stop the others, and the first error is reported.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, user *model.User, product *model.Product, daysLeft int) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, user, product, daysLeft); err != nil && first == nil {
			first = err
		}
	}
	return first
}
