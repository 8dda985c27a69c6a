package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/parse"
	"airline-ops-backend/internal/seq"
)

// CreateUser stores a new account and allocates its role-scoped ID.
// Management accounts get no role ID.
func (s *gormStore) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	username, err := parse.Username(in.Username)
	if err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, domain.ValidationError{Field: "role", Msg: fmt.Sprintf("unknown role %q", in.Role)}
	}
	if in.PasswordHash == "" {
		return nil, domain.ValidationError{Field: "password", Msg: "must not be empty"}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user model.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken > 0 {
			return domain.ValidationError{Field: "username", Msg: "already taken"}
		}

		var roleID string
		if class, ok := seq.ForRole(in.Role); ok {
			if roleID, err = seq.NextID(tx, class); err != nil {
				return err
			}
		}

		user = model.User{
			Username:     username,
			PasswordHash: in.PasswordHash,
			Role:         in.Role,
			RoleID:       roleID,
			CreatedAt:    s.now().UTC(),
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ValidationError{Field: "username", Msg: "already taken", Err: err}
			}
			return fmt.Errorf("insert user %s: %w", username, err)
		}
		return nil
	})
	if err != nil {
		return nil, writeErr("account", err)
	}

	log.Printf("Account %s created with role %s (%s)", user.Username, user.Role, user.RoleID)
	return &user, nil
}

// UserByUsername looks up an account for login.
func (s *gormStore) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "user", ID: username}
	}
	if err != nil {
		return nil, readErr("user", err)
	}
	return &user, nil
}
