// Package scanner implements the periodic warranty alert scan. Each tick
// walks the full product table, computes days remaining, and notifies owners
// of products whose remaining coverage matches a configured threshold.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/repository"
	"github.com/smartwarranty/warranty-go/internal/warranty"
)

// ProductSource lists every product in the system.
// Satisfied by repository.ProductRepository.
type ProductSource interface {
	ListAll(ctx context.Context) ([]model.Product, error)
}

// OwnerSource resolves product owners.
// Satisfied by repository.UserRepository.
type OwnerSource interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Notifier delivers an expiry alert. It is called at most once per matching
// product per tick; delivery is not retried.
type Notifier interface {
	Notify(ctx context.Context, user *model.User, product *model.Product, daysLeft int) error
}

// Scanner runs the warranty expiry scan.
type Scanner struct {
	products   ProductSource
	users      OwnerSource
	notifier   Notifier
	thresholds map[int]struct{}

	now func() time.Time
}

// New creates a Scanner that alerts when a product's days remaining equals
// any of the given threshold values.
func New(products ProductSource, users OwnerSource, notifier Notifier, thresholds []int) *Scanner {
	set := make(map[int]struct{}, len(thresholds))
	for _, d := range thresholds {
		set[d] = struct{}{}
	}

	return &Scanner{
		products:   products,
		users:      users,
		notifier:   notifier,
		thresholds: set,
		now:        time.Now,
	}
}

// Tick performs one scan over the full product set. Per-product failures —
// a missing owner row or a notifier error — are logged and skipped so one
// bad record never aborts the rest of the tick. Only a failed product
// listing is returned as an error.
func (s *Scanner) Tick(ctx context.Context) error {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	today := warranty.Date(s.now())

	var notified int
	for i := range products {
		p := &products[i]

		daysLeft := warranty.DaysRemaining(today, p.ExpiryDate)
		if _, ok := s.thresholds[daysLeft]; !ok {
			continue
		}

		user, err := s.users.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// Referential inconsistency: the product points at a user
				// that no longer exists.
				slog.Warn("scan found product with missing owner",
					"product_id", p.ID, "user_id", p.UserID)
				continue
			}
			slog.Warn("scan could not resolve owner",
				"product_id", p.ID, "user_id", p.UserID, "error", err)
			continue
		}

		if err := s.notifier.Notify(ctx, user, p, daysLeft); err != nil {
			slog.Warn("alert delivery failed",
				"product_id", p.ID, "user_id", p.UserID, "error", err)
			continue
		}
		notified++
	}

	slog.Info("warranty scan complete", "products", len(products), "alerts", notified)
	return nil
}
