// Package services holds the prompt fan-out pipeline and the social graph.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/metrics"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	// previewLinks is how many links a preview group samples
	previewLinks = 3
	// recentPrompts is how many prompts per user feed and profile previews show
	recentPrompts = 3
)

// SubjectResolver maps prompt text to subjects
type SubjectResolver interface {
	Resolve(ctx context.Context, promptText string) (*models.Resolution, error)
}

// ContentSearcher fans a query out to every content source. SearchAll
// holds a key for each name in SourceNames.
type ContentSearcher interface {
	SearchAll(ctx context.Context, query string) map[string][]models.ContentCandidate
	SourceNames() []string
}

// ResourceService runs prompts through subject resolution, search and
// persistence, and rebuilds the per-subject groups on read.
type ResourceService interface {
	ResolveSubjects(ctx context.Context, promptText string) (*models.Resolution, error)
	ProcessPrompt(ctx context.Context, promptText string, isPrivate bool, ownerID uint) ([]models.SubjectResourceGroup, error)
	ProcessSubject(ctx context.Context, prompt *models.Prompt, subject models.Subject) (*models.SubjectResourceGroup, error)

	GetPromptContentsLatest(ctx context.Context, promptID uint) (*models.UserSubjectResourceGroup, error)
	GetPromptContentsHistory(ctx context.Context, promptID uint) ([]models.SubjectResourceGroup, error)
	HistoryForUser(ctx context.Context, promptID, userID uint) ([]models.SubjectResourceGroup, error)
	GetFeed(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error)
	GetProfilePreview(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error)

	ListPrompts(ctx context.Context, userID uint) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, promptID, requesterID uint) (*models.Prompt, error)
	SetPromptVisibility(ctx context.Context, promptID, userID uint, isPrivate bool) (*models.Prompt, error)
}

type resourceService struct {
	resolver SubjectResolver
	searcher ContentSearcher
	prompts  repositories.PromptRepository
	links    repositories.ResponseLinkRepository
	contents repositories.ContentRepository
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	logger   *zap.Logger
}

func NewResourceService(
	resolver SubjectResolver,
	searcher ContentSearcher,
	prompts repositories.PromptRepository,
	links repositories.ResponseLinkRepository,
	contents repositories.ContentRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	logger *zap.Logger,
) ResourceService {
	return &resourceService{
		resolver: resolver,
		searcher: searcher,
		prompts:  prompts,
		links:    links,
		contents: contents,
		users:    users,
		follows:  follows,
		logger:   logger.Named("resources"),
	}
}

var _ ResourceService = (*resourceService)(nil)

func (s *resourceService) ResolveSubjects(ctx context.Context, promptText string) (*models.Resolution, error) {
	if err := checkPromptText(promptText); err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, promptText)
}

// checkPromptText rejects text with nothing for the model to work on
func checkPromptText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("blank prompt: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

// ProcessPrompt resolves subjects before writing anything, then creates the
// prompt and processes basic subjects followed by deeper subjects, one at a
// time. Subjects already saved stay saved if a later one fails.
func (s *resourceService) ProcessPrompt(ctx context.Context, promptText string, isPrivate bool, ownerID uint) ([]models.SubjectResourceGroup, error) {
	resolution, err := s.ResolveSubjects(ctx, promptText)
	if err != nil {
		metrics.PromptsProcessed.WithLabelValues("unresolved").Inc()
		return nil, err
	}

	prompt := &models.Prompt{
		Title:     promptText,
		Keywords:  resolution.MainSubject,
		IsPrivate: isPrivate,
		UserID:    ownerID,
	}
	if err := s.prompts.CreatePrompt(ctx, prompt); err != nil {
		metrics.PromptsProcessed.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	subjects := resolution.Subjects()
	groups := make([]models.SubjectResourceGroup, 0, len(subjects))
	for _, subject := range subjects {
		group, err := s.ProcessSubject(ctx, prompt, subject)
		if err != nil {
			metrics.PromptsProcessed.WithLabelValues("partial").Inc()
			s.logger.Error("Failed to process subject",
				zap.Uint("prompt_id", prompt.ID),
				zap.String("subject", subject.Name),
				zap.Int("completed_subjects", len(groups)),
				zap.Error(err))
			return nil, err
		}
		groups = append(groups, *group)
	}

	metrics.PromptsProcessed.WithLabelValues("ok").Inc()
	s.logger.Info("Processed prompt",
		zap.Uint("prompt_id", prompt.ID),
		zap.Uint("user_id", ownerID),
		zap.Int("subjects", len(groups)))
	return groups, nil
}

// ProcessSubject searches every source for the prompt keywords plus the
// subject name and stores the results in source order.
func (s *resourceService) ProcessSubject(ctx context.Context, prompt *models.Prompt, subject models.Subject) (*models.SubjectResourceGroup, error) {
	query := prompt.Keywords + " " + subject.Name
	bySource := s.searcher.SearchAll(ctx, query)

	var candidates []models.ContentCandidate
	for _, source := range s.searcher.SourceNames() {
		candidates = append(candidates, bySource[source]...)
	}

	contents, err := s.links.SaveSubjectContents(ctx, prompt.ID, subject, candidates)
	if err != nil {
		return nil, fmt.Errorf("save contents for subject %q: %w", subject.Name, err)
	}
	for _, c := range contents {
		metrics.ContentsPersisted.WithLabelValues(c.Source).Inc()
	}

	return &models.SubjectResourceGroup{
		Prompt:      *prompt,
		Subject:     subject.Name,
		Description: subject.Description,
		Contents:    contents,
	}, nil
}

// GetPromptContentsLatest samples the first links of a prompt. The group
// takes the subject of the last sampled link. A prompt without links yields
// an empty subject and no contents.
func (s *resourceService) GetPromptContentsLatest(ctx context.Context, promptID uint) (*models.UserSubjectResourceGroup, error) {
	prompt, err := s.prompts.GetPromptByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetUserByID(ctx, prompt.UserID)
	if err != nil {
		return nil, fmt.Errorf("prompt owner: %w", err)
	}
	return s.latest(ctx, prompt, owner)
}

func (s *resourceService) latest(ctx context.Context, prompt *models.Prompt, owner *models.User) (*models.UserSubjectResourceGroup, error) {
	links, err := s.links.GetFirstLinks(ctx, prompt.ID, previewLinks)
	if err != nil {
		return nil, err
	}

	group := &models.UserSubjectResourceGroup{
		User:     owner.ToCompact(),
		Prompt:   *prompt,
		Contents: []models.Content{},
	}
	if len(links) == 0 {
		return group, nil
	}
	last := links[len(links)-1]
	group.Subject = last.Subject
	group.Description = last.SubjectDescription

	ids := make([]uint, len(links))
	for i, l := range links {
		ids[i] = l.ContentID
	}
	rows, err := s.contents.GetContentsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Content, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			group.Contents = append(group.Contents, c)
		}
	}
	return group, nil
}

// GetPromptContentsHistory groups the prompt's links by subject in
// first-seen order. Each group holds every content ever linked to that
// subject, across all prompts, and a content id is attached to at most one
// group per call.
func (s *resourceService) GetPromptContentsHistory(ctx context.Context, promptID uint) ([]models.SubjectResourceGroup, error) {
	prompt, err := s.prompts.GetPromptByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	links, err := s.links.GetLinksByPrompt(ctx, promptID)
	if err != nil {
		return nil, err
	}

	groups := make([]models.SubjectResourceGroup, 0)
	index := make(map[string]int)
	for _, l := range links {
		if _, ok := index[l.Subject]; ok {
			continue
		}
		index[l.Subject] = len(groups)
		groups = append(groups, models.SubjectResourceGroup{
			Prompt:      *prompt,
			Subject:     l.Subject,
			Description: l.SubjectDescription,
			Contents:    []models.Content{},
		})
	}

	seen := make(map[uint]struct{})
	for i := range groups {
		contents, err := s.links.GetContentsBySubject(ctx, groups[i].Subject)
		if err != nil {
			return nil, err
		}
		for _, c := range contents {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			groups[i].Contents = append(groups[i].Contents, c)
		}
	}
	return groups, nil
}

// HistoryForUser is GetPromptContentsHistory restricted to the prompt owner
func (s *resourceService) HistoryForUser(ctx context.Context, promptID, userID uint) ([]models.SubjectResourceGroup, error) {
	if _, err := s.ownedPrompt(ctx, promptID, userID); err != nil {
		return nil, err
	}
	return s.GetPromptContentsHistory(ctx, promptID)
}

// GetFeed walks the follow list in follow order and previews the latest
// public prompts of each followed user.
func (s *resourceService) GetFeed(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error) {
	following, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	feed := make([]models.UserSubjectResourceGroup, 0)
	for i := range following {
		user := &following[i]
		groups, err := s.previews(ctx, user, true)
		if err != nil {
			return nil, err
		}
		feed = append(feed, groups...)
	}
	return feed, nil
}

// GetProfilePreview previews the user's own latest prompts, private ones included
func (s *resourceService) GetProfilePreview(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.previews(ctx, user, false)
}

func (s *resourceService) previews(ctx context.Context, user *models.User, publicOnly bool) ([]models.UserSubjectResourceGroup, error) {
	prompts, err := s.prompts.GetLatestPrompts(ctx, user.ID, recentPrompts, publicOnly)
	if err != nil {
		return nil, err
	}
	groups := make([]models.UserSubjectResourceGroup, 0, len(prompts))
	for i := range prompts {
		group, err := s.latest(ctx, &prompts[i], user)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

func (s *resourceService) ListPrompts(ctx context.Context, userID uint) ([]models.Prompt, error) {
	return s.prompts.GetPromptsByUser(ctx, userID)
}

// GetPrompt hides private prompts from everyone but their owner
func (s *resourceService) GetPrompt(ctx context.Context, promptID, requesterID uint) (*models.Prompt, error) {
	prompt, err := s.prompts.GetPromptByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if prompt.IsPrivate && prompt.UserID != requesterID {
		return nil, fmt.Errorf("%w: prompt %d is private", apperrors.ErrForbidden, promptID)
	}
	return prompt, nil
}

func (s *resourceService) SetPromptVisibility(ctx context.Context, promptID, userID uint, isPrivate bool) (*models.Prompt, error) {
	prompt, err := s.ownedPrompt(ctx, promptID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.prompts.UpdateVisibility(ctx, promptID, isPrivate); err != nil {
		return nil, err
	}
	prompt.IsPrivate = isPrivate
	s.logger.Info("Prompt visibility changed",
		zap.Uint("prompt_id", promptID),
		zap.Bool("is_private", isPrivate))
	return prompt, nil
}

func (s *resourceService) ownedPrompt(ctx context.Context, promptID, userID uint) (*models.Prompt, error) {
	prompt, err := s.prompts.GetPromptByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if prompt.UserID != userID {
		return nil, fmt.Errorf("%w: prompt %d belongs to another user", apperrors.ErrForbidden, promptID)
	}
	return prompt, nil
}
