// Package subjects resolves a free-text prompt into the subjects used to
// drive content searches.
package subjects

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/llm"
	"github.com/anonto42/curious/backend/internal/metrics"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/pkg/cache"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Resolver is the cache-fronted subject resolution gateway
type Resolver struct {
	primary  llm.Completer
	repair   llm.Completer
	cache    cache.Cache
	validate *validator.Validate
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver wires the primary model, the repair model and the cache.
// timeout bounds each model call separately.
func NewResolver(primary, repair llm.Completer, c cache.Cache, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		primary:  primary,
		repair:   repair,
		cache:    c,
		validate: validator.New(),
		timeout:  timeout,
		logger:   logger.Named("subjects"),
	}
}

// Resolve returns the subjects for promptText. The cache key is the raw
// prompt text. Degenerate answers fail with apperrors.ErrNoSubject and are
// not cached; output that cannot be parsed even after one repair pass fails
// with apperrors.ErrUpstream.
func (r *Resolver) Resolve(ctx context.Context, promptText string) (*models.Resolution, error) {
	if res, ok := r.fromCache(ctx, promptText); ok {
		return res, nil
	}
	metrics.SubjectCache.WithLabelValues("miss").Inc()
	r.logger.Info("Cache miss", zap.Int("prompt_len", len(promptText)))

	res, err := r.generate(ctx, promptText)
	if err != nil {
		return nil, err
	}
	if IsDegenerate(res) {
		r.logger.Warn("LLM returned placeholder subjects", zap.String("main_subject", res.MainSubject))
		return nil, apperrors.ErrNoSubject
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode resolution: %w", err)
	}
	if err := r.cache.Set(ctx, promptText, string(data)); err != nil {
		r.logger.Warn("Cache write failed", zap.Error(err))
	}

	// decode what was stored so a later hit returns the same value
	var stored models.Resolution
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode resolution: %w", err)
	}
	return &stored, nil
}

func (r *Resolver) fromCache(ctx context.Context, promptText string) (*models.Resolution, bool) {
	cached, ok, err := r.cache.Get(ctx, promptText)
	if err != nil {
		r.logger.Warn("Cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var res models.Resolution
	if err := json.Unmarshal([]byte(cached), &res); err != nil || IsDegenerate(&res) {
		r.logger.Warn("Ignoring unusable cache entry", zap.Error(err))
		return nil, false
	}
	metrics.SubjectCache.WithLabelValues("hit").Inc()
	r.logger.Info("Cache hit", zap.Int("prompt_len", len(promptText)))
	return &res, true
}

func (r *Resolver) generate(ctx context.Context, promptText string) (*models.Resolution, error) {
	raw, err := r.complete(ctx, r.primary, buildPrompt(promptText))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve subjects: %w", apperrors.ErrUpstream, err)
	}

	res, parseErr := r.parse(raw)
	if parseErr == nil {
		return res, nil
	}

	r.logger.Warn("Malformed LLM output, attempting repair", zap.Error(parseErr))
	fixed, err := r.complete(ctx, r.repair, buildRepairPrompt(raw, parseErr))
	if err != nil {
		metrics.LLMRepairs.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: repair subjects: %w", apperrors.ErrUpstream, err)
	}
	res, err = r.parse(fixed)
	if err != nil {
		metrics.LLMRepairs.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: subjects unparseable after repair: %w", apperrors.ErrUpstream, err)
	}
	metrics.LLMRepairs.WithLabelValues("fixed").Inc()
	return res, nil
}

func (r *Resolver) complete(ctx context.Context, c llm.Completer, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.Complete(ctx, prompt)
	metrics.LLMLatency.Observe(time.Since(start).Seconds())
	return out, err
}

func (r *Resolver) parse(raw string) (*models.Resolution, error) {
	obj, err := firstObject(raw)
	if err != nil {
		return nil, err
	}
	var res models.Resolution
	if err := json.Unmarshal(obj, &res); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := r.validate.Struct(&res); err != nil {
		return nil, fmt.Errorf("invalid structure: %w", err)
	}
	return &res, nil
}

// IsDegenerate reports whether res echoes the format placeholder or lacks
// subjects, i.e. the model produced no usable answer.
func IsDegenerate(res *models.Resolution) bool {
	if isPlaceholder(res.MainSubject) {
		return true
	}
	return degenerateList(res.BasicSubjects) || degenerateList(res.DeeperSubjects)
}

func degenerateList(list []models.Subject) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if isPlaceholder(s.Name) {
			return true
		}
	}
	return false
}

func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, Placeholder)
}
