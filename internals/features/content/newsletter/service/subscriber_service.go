package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/newsletter/dto"
	"estatehub_backend/internals/features/content/newsletter/model"
)

type Outcome int

const (
	Subscribed Outcome = iota
	AlreadySubscribed
	Reactivated
)

var ErrNotSubscribed = errors.New("Email is not subscribed")

// Subscribe keeps one row per email: an active row is left alone and an inactive one is reactivated.
func Subscribe(ctx context.Context, db *gorm.DB, req dto.SubscribeRequest) (model.NewsletterSubscriberModel, Outcome, error) {
	var row model.NewsletterSubscriberModel
	outcome := Subscribed
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", req.Email).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = model.NewsletterSubscriberModel{
				Email:    req.Email,
				Name:     req.Name,
				Source:   req.Source,
				IsActive: true,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		if row.IsActive {
			outcome = AlreadySubscribed
			return nil
		}
		outcome = Reactivated
		row.IsActive = true
		row.UnsubscribedAt = nil
		row.SubscribedAt = time.Now()
		if req.Name != "" {
			row.Name = req.Name
		}
		return tx.Select("is_active", "unsubscribed_at", "subscribed_at", "name", "updated_at").Save(&row).Error
	})
	return row, outcome, err
}

// Unsubscribe marks the row inactive. Unsubscribing twice is not an error.
func Unsubscribe(ctx context.Context, db *gorm.DB, email string) error {
	var row model.NewsletterSubscriberModel
	if err := db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSubscribed
		}
		return err
	}
	if !row.IsActive {
		return nil
	}
	now := time.Now()
	return db.WithContext(ctx).Model(&row).Updates(map[string]any{
		"is_active":       false,
		"unsubscribed_at": now,
	}).Error
}
