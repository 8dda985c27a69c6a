package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
)

// SaveSubscription creates or replaces a push subscription for its owner.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	if sub.Endpoint == "" {
		return domain.ValidationError{Field: "endpoint", Msg: "must not be empty"}
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now().UTC()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "user_id", "role", "role_id"}),
	}).Create(sub).Error
	return writeErr("subscription", err)
}

// Subscription returns the caller's subscription for an endpoint.
func (s *gormStore) Subscription(ctx context.Context, endpoint string, userID int64) (*model.PushSubscription, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Where("endpoint = ? AND user_id = ?", endpoint, userID).Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "subscription"}
	}
	if err != nil {
		return nil, readErr("subscription", err)
	}
	return &sub, nil
}

// DeleteSubscription removes the caller's subscription for an endpoint.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string, userID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := s.db.WithContext(ctx).Where("endpoint = ? AND user_id = ?", endpoint, userID).Delete(&model.PushSubscription{})
	if res.Error != nil {
		return writeErr("subscription", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "subscription"}
	}
	return nil
}

// UpdateFlightStatus applies on-time flags from the operations feed. Seat
// inventory is never touched. Unknown instances are skipped.
func (s *gormStore) UpdateFlightStatus(ctx context.Context, updates []StatusUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&model.FlightInstance{}).
				Where("flight_instance_id = ?", u.FlightInstanceID).
				Updates(map[string]any{
					"departed_on_time": u.DepartedOnTime,
					"arrived_on_time":  u.ArrivedOnTime,
				})
			if res.Error != nil {
				return fmt.Errorf("update status of %s: %w", u.FlightInstanceID, res.Error)
			}
			updated += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, writeErr("flight status", err)
	}
	return updated, nil
}
