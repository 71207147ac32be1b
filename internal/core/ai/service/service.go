package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"recipe-catalog/internal/core/ai/cache"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/pkg/common"

	"go.uber.org/zap"
)

// Suggester calls the remote suggestion endpoint.
type Suggester interface {
	Suggest(ctx context.Context, ingredients string) (string, error)
}

// Response AI 回應結構
type Response struct {
	Content  string `json:"recipe"`
	CacheHit bool   `json:"cacheHit"`
}

// Service serves remote suggestions behind a response cache and a minimum
// interval between upstream calls.
type Service struct {
	enabled      bool
	minInterval  time.Duration
	suggester    Suggester
	cacheManager *cache.CacheManager
	now          func() time.Time

	mu          sync.Mutex
	lastRequest time.Time
}

// NewService creates the service. cacheManager may be nil.
func NewService(cfg config.SuggestionConfig, suggester Suggester, cacheManager *cache.CacheManager) *Service {
	return &Service{
		enabled:      cfg.Enabled,
		minInterval:  cfg.MinInterval,
		suggester:    suggester,
		cacheManager: cacheManager,
		now:          time.Now,
	}
}

// Enabled reports whether remote suggestions are switched on.
func (s *Service) Enabled() bool {
	return s.enabled
}

// ProcessRequest returns a suggestion for ingredients. Cached answers skip
// the interval check.
func (s *Service) ProcessRequest(ctx context.Context, ingredients string) (*Response, error) {
	if !s.enabled {
		return nil, common.ErrRemoteDisabled
	}

	// 統一格式，確保快取 key 一致
	ingredients = strings.Join(strings.Fields(ingredients), " ")
	if ingredients == "" {
		return nil, common.NewValidationError("ingredients are required")
	}
	key := strings.ToLower(ingredients)

	if val, err := s.cacheManager.Get(key); err == nil {
		return &Response{Content: val, CacheHit: true}, nil
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	content, err := s.suggester.Suggest(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	if err := s.cacheManager.Set(key, content); err != nil {
		common.LogWarn("Failed to cache suggestion", zap.Error(err))
	}
	return &Response{Content: content}, nil
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	if s.minInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastRequest.IsZero() && now.Sub(s.lastRequest) < s.minInterval {
		return common.ErrRateLimited
	}
	s.lastRequest = now
	return nil
}
