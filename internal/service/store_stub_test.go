package service

import (
	"context"

	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/repository"
)

// In-memory stores used to exercise the services without a database.

type stubUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[int64]*model.User)}
}

func (s *stubUserStore) Create(_ context.Context, user *model.User) error {
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	var found *model.User
	for _, u := range s.users {
		if u.Email == email && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, repository.ErrUserNotFound
	}
	clone := *found
	return &clone, nil
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubProductStore struct {
	products map[int64]*model.Product
	nextID   int64
}

func newStubProductStore() *stubProductStore {
	return &stubProductStore{products: make(map[int64]*model.Product)}
}

func (s *stubProductStore) Create(_ context.Context, p *model.Product) error {
	s.nextID++
	p.ID = s.nextID
	clone := *p
	s.products[p.ID] = &clone
	return nil
}

func (s *stubProductStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubProductStore) ListByUser(_ context.Context, userID int64) ([]model.Product, error) {
	var out []model.Product
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.products[id]; ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) UpdateName(_ context.Context, id int64, name string) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Name = name
	return nil
}

func (s *stubProductStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
