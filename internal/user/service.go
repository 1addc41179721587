// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Service struct {
	repo     Repository
	security config.SecurityConfig
	now      func() time.Time
}

func NewService(repo Repository, security config.SecurityConfig) *Service {
	return &Service{
		repo:     repo,
		security: security,
		now:      time.Now,
	}
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns the active user with the given username, including
// its stored credentials.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) Search(ctx context.Context, params SearchParams) ([]User, error) {
	return s.repo.Search(ctx, params)
}

func (s *Service) LeaseTenants(ctx context.Context, leaseID int64) ([]User, error) {
	return s.repo.ListByLease(ctx, leaseID)
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("create user: invalid role %d: %w", req.Role, core.ErrInvalidInput)
	}

	hash, salt, err := core.HashPassword(
		req.Password,
		s.security.HashIterations,
		s.security.SaltSize,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &User{
		CompanyID:    req.CompanyID,
		LeaseID:      req.LeaseID,
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		PasswordSalt: salt,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		Phone:        NormalizePhone(req.Phone),
		Role:         req.Role,
		Birthdate:    req.Birthdate,
		CreatedDate:  s.now().UTC(),
		Active:       true,
		IsOwner:      req.IsOwner,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser applies only the fields that differ from the stored row and
// skips the write entirely when nothing changed.
func (s *Service) UpdateUser(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	setString := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}

	setString(&user.Username, req.Username)
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Email, req.Email)

	if req.Phone != nil {
		phone := NormalizePhone(*req.Phone)
		setString(&user.Phone, &phone)
	}

	if req.Active != nil && user.Active != *req.Active {
		user.Active = *req.Active
		changed = true
	}

	if !changed {
		return user, nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
