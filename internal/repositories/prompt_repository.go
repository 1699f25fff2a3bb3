package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/models"
	"gorm.io/gorm"
)

// PromptRepository stores user prompts. Lists are newest first.
type PromptRepository interface {
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error
	GetPromptByID(ctx context.Context, id uint) (*models.Prompt, error)
	GetPromptsByUser(ctx context.Context, userID uint) ([]models.Prompt, error)
	GetLatestPrompts(ctx context.Context, userID uint, limit int, publicOnly bool) ([]models.Prompt, error)
	UpdateVisibility(ctx context.Context, id uint, isPrivate bool) error
}

type PostgresPromptRepository struct {
	db *gorm.DB
}

func NewPostgresPromptRepository(db *gorm.DB) *PostgresPromptRepository {
	return &PostgresPromptRepository{db: db}
}

func (r *PostgresPromptRepository) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	return translateErr(r.db.WithContext(ctx).Create(prompt).Error)
}

func (r *PostgresPromptRepository) GetPromptByID(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := r.db.WithContext(ctx).First(&prompt, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &prompt, nil
}

func (r *PostgresPromptRepository) GetPromptsByUser(ctx context.Context, userID uint) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&prompts).Error
	return prompts, translateErr(err)
}

// GetLatestPrompts returns up to limit prompts of userID by descending id.
// publicOnly skips private prompts.
func (r *PostgresPromptRepository) GetLatestPrompts(ctx context.Context, userID uint, limit int, publicOnly bool) ([]models.Prompt, error) {
	var prompts []models.Prompt
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if publicOnly {
		q = q.Where("is_private = ?", false)
	}
	err := q.Order("id DESC").Limit(limit).Find(&prompts).Error
	return prompts, translateErr(err)
}

func (r *PostgresPromptRepository) UpdateVisibility(ctx context.Context, id uint, isPrivate bool) error {
	res := r.db.WithContext(ctx).Model(&models.Prompt{}).Where("id = ?", id).Update("is_private", isPrivate)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: prompt %d", apperrors.ErrNotFound, id)
	}
	return nil
}
