package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

// TemplateRepository handles CRUD for recurring task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *model.TaskTemplate) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// Save persists all fields of an existing template, including cleared
// completion markers.
func (r *TemplateRepository) Save(ctx context.Context, template *model.TaskTemplate) error {
	if err := r.db.WithContext(ctx).Save(template).Error; err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uint) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// ListByWeekday returns all templates scheduled on the given 1..7 weekday,
// ordered by start time.
func (r *TemplateRepository) ListByWeekday(ctx context.Context, weekday int) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Where("weekday = ?", weekday).
		Order("start ASC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.TaskTemplate{}, id).Error; err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
