package repositories

import (
	"context"

	"github.com/anonto42/curious/backend/internal/models"
	"gorm.io/gorm"
)

// ContentRepository reads content rows. Rows are written only through
// ResponseLinkRepository.SaveSubjectContents.
type ContentRepository interface {
	GetContentByID(ctx context.Context, id uint) (*models.Content, error)
	GetContents(ctx context.Context, offset, limit int) ([]models.Content, error)
	GetContentsByIDs(ctx context.Context, ids []uint) ([]models.Content, error)
}

type PostgresContentRepository struct {
	db *gorm.DB
}

func NewPostgresContentRepository(db *gorm.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

func (r *PostgresContentRepository) GetContentByID(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &content, nil
}

func (r *PostgresContentRepository) GetContents(ctx context.Context, offset, limit int) ([]models.Content, error) {
	var contents []models.Content
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&contents).Error
	return contents, translateErr(err)
}

// GetContentsByIDs returns the rows ordered by id. Unknown ids are skipped.
func (r *PostgresContentRepository) GetContentsByIDs(ctx context.Context, ids []uint) ([]models.Content, error) {
	if len(ids) == 0 {
		return []models.Content{}, nil
	}
	var contents []models.Content
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&contents).Error
	return contents, translateErr(err)
}
