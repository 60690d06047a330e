package repository

import (
	"context"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type itemModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	OwnerID        int64     `gorm:"column:owner_id;index"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	ConditionNotes *string   `gorm:"column:condition_notes"`
	Category       *string   `gorm:"column:category"`
	Location       *string   `gorm:"column:location"`
	PricePerDay    float64   `gorm:"column:price_per_day"`
	DepositAmount  float64   `gorm:"column:deposit_amount"`
	IsAvailable    bool      `gorm:"column:is_available"`
	Delisted       bool      `gorm:"column:delisted"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (itemModel) TableName() string { return "items" }

func toDomainItem(m itemModel) *domain.Item {
	var notes, category, location string
	if m.ConditionNotes != nil {
		notes = *m.ConditionNotes
	}
	if m.Category != nil {
		category = *m.Category
	}
	if m.Location != nil {
		location = *m.Location
	}

	return &domain.Item{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Description:    m.Description,
		ConditionNotes: notes,
		Category:       category,
		Location:       location,
		PricePerDay:    m.PricePerDay,
		DepositAmount:  m.DepositAmount,
		IsAvailable:    m.IsAvailable,
		Delisted:       m.Delisted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toItemModel(i *domain.Item) itemModel {
	var notes, category, location *string
	if i.ConditionNotes != "" {
		v := i.ConditionNotes
		notes = &v
	}
	if i.Category != "" {
		v := i.Category
		category = &v
	}
	if i.Location != "" {
		v := i.Location
		location = &v
	}

	return itemModel{
		ID:             i.ID,
		OwnerID:        i.OwnerID,
		Name:           i.Name,
		Description:    i.Description,
		ConditionNotes: notes,
		Category:       category,
		Location:       location,
		PricePerDay:    i.PricePerDay,
		DepositAmount:  i.DepositAmount,
		IsAvailable:    i.IsAvailable,
		Delisted:       i.Delisted,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func (r *ItemRepository) Create(ctx context.Context, i *domain.Item) error {
	m := toItemModel(i)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*i = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var m itemModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainItem(m), nil
}

func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	var rows []itemModel
	tx := r.db.WithContext(ctx).
		Where("delisted = ?", false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Item, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainItem(m))
	}
	return out, nil
}

func (r *ItemRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	var rows []itemModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Item, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainItem(m))
	}
	return out, nil
}

func (r *ItemRepository) Update(ctx context.Context, i *domain.Item) error {
	m := toItemModel(i)
	return r.db.WithContext(ctx).Model(&itemModel{}).
		Where("id = ?", i.ID).
		Updates(map[string]any{
			"name":            m.Name,
			"description":     m.Description,
			"condition_notes": m.ConditionNotes,
			"category":        m.Category,
			"location":        m.Location,
			"price_per_day":   m.PricePerDay,
			"deposit_amount":  m.DepositAmount,
			"updated_at":      time.Now().UTC(),
		}).Error
}

func (r *ItemRepository) SetDelisted(ctx context.Context, id int64, delisted bool) error {
	return r.db.WithContext(ctx).Model(&itemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"delisted": delisted, "updated_at": time.Now().UTC()}).Error
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&itemModel{}, id).Error
}
