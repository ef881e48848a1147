package repository

import "testing"

func TestNewRepositories(t *testing.T) {
	users := NewUserRepository(nil)
	if users == nil {
		t.Fatal("expected non-nil UserRepository")
	}

	products := NewProductRepository(nil)
	if products == nil {
		t.Fatal("expected non-nil ProductRepository")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound == nil || ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected ErrUserNotFound: %v", ErrUserNotFound)
	}
	if ErrProductNotFound == nil || ErrProductNotFound.Error() != "product not found" {
		t.Fatalf("unexpected ErrProductNotFound: %v", ErrProductNotFound)
	}
}
