package catalog

import (
	"context"
	"errors"
	"math"

	"renthub/internal/domain"
	"renthub/internal/pkg/validator"
	"renthub/internal/repository"

	"gorm.io/gorm"
)

var liveStatuses = []domain.BookingStatus{domain.BookingApproved, domain.BookingActive}

type Service struct {
	items    ItemRepository
	bookings BookingReader
}

func NewService(items ItemRepository, bookings BookingReader) *Service {
	return &Service{items: items, bookings: bookings}
}

func (s *Service) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*domain.Item, error) {
	item := &domain.Item{
		OwnerID:        ownerID,
		Name:           req.Name,
		Description:    req.Description,
		ConditionNotes: req.ConditionNotes,
		Category:       req.Category,
		Location:       req.Location,
		PricePerDay:    req.PricePerDay,
		DepositAmount:  req.DepositAmount,
		IsAvailable:    true,
	}
	if errs := validator.Validate(item); errs != nil {
		return nil, ErrValidation
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.items.List(ctx, limit, offset)
}

func (s *Service) MyItems(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return s.items.GetByOwner(ctx, ownerID)
}

// UpdateItem applies a partial update. A price change re-prices every
// still-PENDING booking of the item; approved totals are frozen and stay
// untouched.
func (s *Service) UpdateItem(ctx context.Context, itemID, ownerID int64, req UpdateItemRequest) (*domain.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ConditionNotes != nil {
		item.ConditionNotes = *req.ConditionNotes
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	priceChanged := false
	if req.PricePerDay != nil && *req.PricePerDay != item.PricePerDay {
		if *req.PricePerDay <= 0 {
			return nil, ErrValidation
		}
		item.PricePerDay = *req.PricePerDay
		priceChanged = true
	}
	if req.DepositAmount != nil {
		if *req.DepositAmount < 0 {
			return nil, ErrValidation
		}
		item.DepositAmount = *req.DepositAmount
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	if priceChanged {
		if err := s.repricePending(ctx, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (s *Service) repricePending(ctx context.Context, item *domain.Item) error {
	pending, err := s.bookings.GetPendingByItem(ctx, item.ID)
	if err != nil {
		return err
	}
	for _, b := range pending {
		total := math.Round(item.PricePerDay*float64(b.Days())*100) / 100
		err := s.bookings.UpdateDates(ctx, b.ID, b.StartDate, b.EndDate, total)
		if errors.Is(err, repository.ErrStaleStatus) {
			// The booking left PENDING meanwhile; its total is frozen.
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Delist hard-disables the listing. Refused while an APPROVED or ACTIVE
// booking exists; pending requests stay and can still be rejected.
func (s *Service) Delist(ctx context.Context, itemID, ownerID int64) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return ErrForbidden
	}

	live, err := s.bookings.CountByItemStatuses(ctx, itemID, liveStatuses)
	if err != nil {
		return err
	}
	if live > 0 {
		return ErrItemHasRents
	}
	return s.items.SetDelisted(ctx, itemID, true)
}

func (s *Service) Relist(ctx context.Context, itemID, ownerID int64) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.items.SetDelisted(ctx, itemID, false)
}

// DeleteItem removes a listing with no live bookings. Historical bookings
// reference the item by id only and survive for audit.
func (s *Service) DeleteItem(ctx context.Context, itemID, ownerID int64) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return ErrForbidden
	}

	live, err := s.bookings.CountByItemStatuses(ctx, itemID, liveStatuses)
	if err != nil {
		return err
	}
	if live > 0 {
		return ErrItemHasRents
	}
	return s.items.Delete(ctx, itemID)
}
