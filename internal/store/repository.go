package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pantryhq/pantry/internal/pantry"
)

// validatable is implemented by entities that check themselves before saving.
type validatable interface {
	Validate() error
}

// Repository is the persistence contract for one entity type. Every lookup
// that finds nothing returns a *pantry.NotFoundError.
type Repository[T any] interface {
	Get(ctx context.Context, id uint) (*T, error)
	FindBy(ctx context.Context, column string, value any) ([]*T, error)
	FirstBy(ctx context.Context, column string, value any) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// GormRepository implements Repository on top of a gorm handle.
type GormRepository[T any] struct {
	db     *gorm.DB
	entity string
}

var _ Repository[pantry.Category] = (*GormRepository[pantry.Category])(nil)

// NewGormRepository creates a repository for T. entity names T in error messages.
func NewGormRepository[T any](db *gorm.DB, entity string) *GormRepository[T] {
	return &GormRepository[T]{db: db, entity: entity}
}

// Get loads the record with the given primary key.
func (r *GormRepository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var v T
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &pantry.NotFoundError{Entity: r.entity, Field: "ID", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s %d: %w", r.name(), id, err)
	}
	return &v, nil
}

// FindBy returns all records whose column equals value, ordered by id.
func (r *GormRepository[T]) FindBy(ctx context.Context, column string, value any) ([]*T, error) {
	var list []*T
	err := r.db.WithContext(ctx).
		Where(map[string]any{column: value}).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("finding %s by %s: %w", r.name(), column, err)
	}
	return list, nil
}

// FirstBy returns the lowest-id record whose column equals value.
func (r *GormRepository[T]) FirstBy(ctx context.Context, column string, value any) (*T, error) {
	var v T
	err := r.db.WithContext(ctx).
		Where(map[string]any{column: value}).
		Order("id").
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &pantry.NotFoundError{Entity: r.entity, Field: column, Key: value}
	}
	if err != nil {
		return nil, fmt.Errorf("finding %s by %s: %w", r.name(), column, err)
	}
	return &v, nil
}

// List returns every record ordered by id.
func (r *GormRepository[T]) List(ctx context.Context) ([]*T, error) {
	var list []*T
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.name(), err)
	}
	return list, nil
}

// Save inserts v when its primary key is zero and updates it otherwise.
func (r *GormRepository[T]) Save(ctx context.Context, v *T) error {
	if val, ok := any(v).(validatable); ok {
		if err := val.Validate(); err != nil {
			return err
		}
	}
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("saving %s: %w", r.name(), err)
	}
	return nil
}

// Delete removes the record with the given primary key.
func (r *GormRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("deleting %s %d: %w", r.name(), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &pantry.NotFoundError{Entity: r.entity, Field: "ID", Key: id}
	}
	return nil
}

// Count returns the number of stored records.
func (r *GormRepository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting %s: %w", r.name(), err)
	}
	return n, nil
}

func (r *GormRepository[T]) name() string {
	return strings.ToLower(r.entity)
}
