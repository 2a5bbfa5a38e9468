package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/likehq/giftcards-core/internal/app/pkg"
	"gorm.io/gorm"
)

var (
	// ErrCodeCollision is returned when an insert loses the unique index
	// race on code. Callers regenerate and retry.
	ErrCodeCollision = errors.New("gift card code already exists")
	ErrNotFound      = errors.New("gift card not found")
	// ErrConflict is returned when a transition finds the card outside the
	// expected status. Terminal states never leave it.
	ErrConflict = errors.New("gift card is not in the expected status")
)

// GiftCardStore is the source of truth for gift card state. Uniqueness of
// codes and exactly-once redemption are enforced here, not by callers:
// multiple server instances share nothing but this store.
type GiftCardStore interface {
	// InsertUnique persists a new card, failing with ErrCodeCollision if any
	// card already holds the same code.
	InsertUnique(ctx context.Context, card *models.GiftCard) error
	// FindByCode looks a card up by its code, case-insensitively.
	FindByCode(ctx context.Context, code string) (*models.GiftCard, error)
	// CompareAndTransition atomically moves a card from one status to
	// another, applying mutate to the written fields in the same operation.
	// ErrConflict means the card exists but is not in `from` anymore.
	CompareAndTransition(ctx context.Context, code string, from, to models.GiftCardStatus, mutate func(*models.GiftCard)) (*models.GiftCard, error)
	// List returns a page of cards, newest first, optionally filtered by status.
	List(ctx context.Context, limit, offset int, status *models.GiftCardStatus) ([]models.GiftCard, error)
	// Count returns the number of cards, optionally filtered by status.
	Count(ctx context.Context, status *models.GiftCardStatus) (int64, error)
	// ExpireOverdue moves every active card whose expiry has passed to
	// EXPIRED and reports how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type GormGiftCardStore struct {
	db *gorm.DB
}

func NewGormGiftCardStore(db *gorm.DB) *GormGiftCardStore {
	return &GormGiftCardStore{db: db}
}

func (r *GormGiftCardStore) InsertUnique(ctx context.Context, card *models.GiftCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	card.Code = pkg.NormalizeGiftCardCode(card.Code)

	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeCollision
		}
		return fmt.Errorf("insert gift card: %w", err)
	}
	return nil
}

func (r *GormGiftCardStore) FindByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	var card models.GiftCard
	err := r.db.WithContext(ctx).
		Where("code = ?", pkg.NormalizeGiftCardCode(code)).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find gift card: %w", err)
	}
	return &card, nil
}

func (r *GormGiftCardStore) CompareAndTransition(ctx context.Context, code string, from, to models.GiftCardStatus, mutate func(*models.GiftCard)) (*models.GiftCard, error) {
	code = pkg.NormalizeGiftCardCode(code)

	changes := models.GiftCard{Status: to}
	if mutate != nil {
		mutate(&changes)
	}

	// A single conditional UPDATE. Concurrent callers race on the status
	// predicate; the database guarantees at most one of them wins.
	res := r.db.WithContext(ctx).
		Model(&models.GiftCard{}).
		Where("code = ? AND status = ?", code, from).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("transition gift card: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// Unknown code and lost race look the same to the UPDATE; a follow-up
		// read tells them apart. The state is terminal either way.
		if _, err := r.FindByCode(ctx, code); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}

	return r.FindByCode(ctx, code)
}

func (r *GormGiftCardStore) List(ctx context.Context, limit, offset int, status *models.GiftCardStatus) ([]models.GiftCard, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var cards []models.GiftCard
	if err := query.Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list gift cards: %w", err)
	}
	return cards, nil
}

func (r *GormGiftCardStore) Count(ctx context.Context, status *models.GiftCardStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GiftCard{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count gift cards: %w", err)
	}
	return total, nil
}

func (r *GormGiftCardStore) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GiftCard{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.GiftCardStatusActive, now).
		Update("status", models.GiftCardStatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire gift cards: %w", res.Error)
	}
	return res.RowsAffected, nil
}
