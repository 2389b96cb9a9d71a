package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/usecase"
)

// propertyGorm は PropertyRepository の SQL 実装です。
// PostgreSQL / MySQL / SQLite のいずれでも同じコードで動作します。
type propertyGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// propertyGormがPropertyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PropertyRepository = (*propertyGorm)(nil)

// NewPropertyGorm は指定されたgorm.DB接続でリポジトリを生成します。
func NewPropertyGorm(db *gorm.DB) *propertyGorm {
	return &propertyGorm{db: db, now: time.Now}
}

// Create は UUID を採番して物件を追加します。
func (r *propertyGorm) Create(ctx context.Context, p *entity.Property) error {
	if _, err := uuid.Parse(p.UserID); err != nil {
		return fmt.Errorf("invalid owner id %q: %w", p.UserID, err)
	}
	now := r.now().UTC()
	m := PropertyModelFromEntity(p)
	m.ID = uuid.NewString()
	m.CreatedAt, m.UpdatedAt = now, now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	p.ID = m.ID
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// List は全物件を新しい順に返します。
func (r *propertyGorm) List(ctx context.Context) ([]entity.Property, error) {
	return r.find(r.db.WithContext(ctx))
}

// ListByOwner は ownerID の物件を新しい順に返します。
func (r *propertyGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", ownerID))
}

// FindByID は ID で物件を取得します。
func (r *propertyGorm) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDAndOwner は所有者が一致する場合のみ物件を返します。
func (r *propertyGorm) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID))
}

// Update は p.ID と p.UserID に一致する行の全カラムを書き換えます。
func (r *propertyGorm) Update(ctx context.Context, p *entity.Property) error {
	now := r.now().UTC()
	m := PropertyModelFromEntity(p)
	m.UpdatedAt = now

	tx := r.db.WithContext(ctx).
		Model(&PropertyModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(m)
	if tx.Error != nil {
		return fmt.Errorf("failed to update property: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return usecase.ErrPropertyNotFound
	}
	p.UpdatedAt = now
	return nil
}

// DeleteByIDAndOwner は所有者スコープで削除し、削除前の物件を返します。
func (r *propertyGorm) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	var deleted *entity.Property
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.first(tx.Where("id = ? AND user_id = ?", id, ownerID))
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&PropertyModel{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete property: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPropertyNotFound
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// UpdatePrice は見出し価格のみを更新します。
func (r *propertyGorm) UpdatePrice(ctx context.Context, id, price string) error {
	tx := r.db.WithContext(ctx).Model(&PropertyModel{}).Where("id = ?", id).Update("price", price)
	if tx.Error != nil {
		return fmt.Errorf("failed to update price: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return usecase.ErrPropertyNotFound
	}
	return nil
}

func (r *propertyGorm) find(q *gorm.DB) ([]entity.Property, error) {
	var models []PropertyModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	out := make([]entity.Property, 0, len(models))
	for i := range models {
		out = append(out, *models[i].ToEntity())
	}
	return out, nil
}

func (r *propertyGorm) first(q *gorm.DB) (*entity.Property, error) {
	var m PropertyModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return m.ToEntity(), nil
}
