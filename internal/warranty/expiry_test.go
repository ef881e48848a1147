package warranty

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeExpiry(t *testing.T) {
	tests := []struct {
		name         string
		purchase     string
		warrantyDays int
		want         string
	}{
		{"one year across a leap year", "2024-01-01", 365, "2024-12-31"},
		{"zero days", "2024-06-15", 0, "2024-06-15"},
		{"thirty days", "2024-01-31", 30, "2024-03-01"},
		{"two years", "2023-02-28", 730, "2025-02-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeExpiry(date(tt.purchase), tt.warrantyDays)
			if err != nil {
				t.Fatalf("ComputeExpiry() unexpected error: %v", err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ComputeExpiry() = %s, want %s", got.Format(DateLayout), tt.want)
			}

			// Recomputation from the same inputs yields the same date.
			again, err := ComputeExpiry(date(tt.purchase), tt.warrantyDays)
			if err != nil {
				t.Fatalf("ComputeExpiry() unexpected error on recompute: %v", err)
			}
			if !again.Equal(got) {
				t.Errorf("ComputeExpiry() not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestComputeExpiryNegativeDays(t *testing.T) {
	_, err := ComputeExpiry(date("2024-01-01"), -1)
	if err != ErrNegativeWarranty {
		t.Errorf("expected ErrNegativeWarranty, got %v", err)
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		today  string
		expiry string
		want   int
	}{
		{"2024-12-26", "2024-12-31", 5},
		{"2025-01-01", "2024-12-31", -1},
		{"2024-12-31", "2024-12-31", 0},
		{"2024-01-01", "2024-12-31", 365},
	}

	for _, tt := range tests {
		if got := DaysRemaining(date(tt.today), date(tt.expiry)); got != tt.want {
			t.Errorf("DaysRemaining(%s, %s) = %d, want %d", tt.today, tt.expiry, got, tt.want)
		}
	}
}

func TestStatusForPartition(t *testing.T) {
	tests := []struct {
		daysRemaining int
		want          Status
	}{
		{-100, StatusExpired},
		{-1, StatusExpired},
		{0, StatusExpiringSoon},
		{1, StatusExpiringSoon},
		{5, StatusExpiringSoon},
		{6, StatusActive},
		{400, StatusActive},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.daysRemaining); got != tt.want {
			t.Errorf("StatusFor(%d) = %s, want %s", tt.daysRemaining, got, tt.want)
		}
	}

	// Every integer maps to exactly one of the three statuses.
	for d := -10; d <= 10; d++ {
		switch StatusFor(d) {
		case StatusExpired, StatusExpiringSoon, StatusActive:
		default:
			t.Fatalf("StatusFor(%d) returned unknown status", d)
		}
	}
}

func TestComputeStatusScenario(t *testing.T) {
	expiry, err := ComputeExpiry(date("2024-01-01"), 365)
	if err != nil {
		t.Fatalf("ComputeExpiry() unexpected error: %v", err)
	}

	if got := ComputeStatus(date("2024-12-26"), expiry); got != StatusExpiringSoon {
		t.Errorf("status five days out = %s, want %s", got, StatusExpiringSoon)
	}
	if got := ComputeStatus(date("2025-01-01"), expiry); got != StatusExpired {
		t.Errorf("status one day past = %s, want %s", got, StatusExpired)
	}
	if got := ComputeStatus(date("2024-06-01"), expiry); got != StatusActive {
		t.Errorf("status mid-coverage = %s, want %s", got, StatusActive)
	}
}

func TestDateTruncatesTime(t *testing.T) {
	loc := time.FixedZone("TST", 5*3600)
	stamp := time.Date(2024, 3, 10, 23, 45, 12, 0, loc)

	got := Date(stamp)
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.UTC {
		t.Errorf("Date() did not normalize to UTC midnight: %v", got)
	}
}
