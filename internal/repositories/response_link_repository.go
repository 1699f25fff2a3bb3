package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/curious/backend/internal/models"
	"gorm.io/gorm"
)

// ResponseLinkRepository owns the prompt/subject/content join. Lists are
// ordered by link id, i.e. creation order.
type ResponseLinkRepository interface {
	SaveSubjectContents(ctx context.Context, promptID uint, subject models.Subject, candidates []models.ContentCandidate) ([]models.Content, error)
	GetFirstLinks(ctx context.Context, promptID uint, limit int) ([]models.ResponseLink, error)
	GetLinksByPrompt(ctx context.Context, promptID uint) ([]models.ResponseLink, error)
	GetContentsBySubject(ctx context.Context, subject string) ([]models.Content, error)
}

type PostgresResponseLinkRepository struct {
	db *gorm.DB
}

func NewPostgresResponseLinkRepository(db *gorm.DB) *PostgresResponseLinkRepository {
	return &PostgresResponseLinkRepository{db: db}
}

// SaveSubjectContents writes a Content row and then its ResponseLink for
// every candidate, in order, inside one transaction. A failure rolls back
// this subject only.
func (r *PostgresResponseLinkRepository) SaveSubjectContents(ctx context.Context, promptID uint, subject models.Subject, candidates []models.ContentCandidate) ([]models.Content, error) {
	created := make([]models.Content, 0, len(candidates))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, candidate := range candidates {
			content := candidate.ToContent()
			if err := tx.Create(&content).Error; err != nil {
				return fmt.Errorf("create content: %w", err)
			}

			link := models.ResponseLink{
				PromptID:           promptID,
				ContentID:          content.ID,
				Subject:            subject.Name,
				SubjectDescription: subject.Description,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("create response link: %w", err)
			}
			created = append(created, content)
		}
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return created, nil
}

func (r *PostgresResponseLinkRepository) GetFirstLinks(ctx context.Context, promptID uint, limit int) ([]models.ResponseLink, error) {
	var links []models.ResponseLink
	err := r.db.WithContext(ctx).Where("prompt_id = ?", promptID).Order("id").Limit(limit).Find(&links).Error
	return links, translateErr(err)
}

func (r *PostgresResponseLinkRepository) GetLinksByPrompt(ctx context.Context, promptID uint) ([]models.ResponseLink, error) {
	var links []models.ResponseLink
	err := r.db.WithContext(ctx).Where("prompt_id = ?", promptID).Order("id").Find(&links).Error
	return links, translateErr(err)
}

// GetContentsBySubject returns the content of every link carrying subject,
// across all prompts, in link order. A content referenced twice appears twice.
func (r *PostgresResponseLinkRepository) GetContentsBySubject(ctx context.Context, subject string) ([]models.Content, error) {
	var contents []models.Content
	err := r.db.WithContext(ctx).
		Joins("JOIN response_links ON response_links.content_id = contents.id").
		Where("response_links.subject = ?", subject).
		Order("response_links.id").
		Find(&contents).Error
	return contents, translateErr(err)
}
