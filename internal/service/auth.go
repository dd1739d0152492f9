package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campusbazaar/backend/internal/hash"
	"github.com/campusbazaar/backend/internal/models"
	"github.com/campusbazaar/backend/internal/repo"
	"github.com/campusbazaar/backend/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Register creates a user and hands back a signed token. Students are usable
// immediately; vendors and admins start unapproved and cannot log in until an
// admin approves them.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, "", fmt.Errorf("%w: invalid user role %q", ErrValidation, role)
	}

	if _, err := s.Repo.UserByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsApproved:   role == models.RoleStudent,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := tokens.Sign(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials and the approval gate. Unapproved vendors and
// admins are refused even with a correct password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, "", err
	}
	if !hash.Check(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if (user.Role == models.RoleVendor || user.Role == models.RoleAdmin) && !user.IsApproved {
		return nil, "", fmt.Errorf("%w: %s account is pending admin approval", ErrForbidden, user.Role)
	}

	token, err := tokens.Sign(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
