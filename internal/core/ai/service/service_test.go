package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-catalog/internal/core/ai/cache"
	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/pkg/common"
)

type fakeSuggester struct {
	calls []string
	reply string
	err   error
}

func (f *fakeSuggester) Suggest(_ context.Context, ingredients string) (string, error) {
	f.calls = append(f.calls, ingredients)
	return f.reply, f.err
}

func newCache(t *testing.T) *cache.CacheManager {
	t.Helper()
	m := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Hour, CleanupInterval: time.Hour})
	t.Cleanup(func() { m.Close() })
	return m
}

func TestService_CachesNormalizedInput(t *testing.T) {
	f := &fakeSuggester{reply: "Omelette"}
	s := NewService(config.SuggestionConfig{Enabled: true}, f, newCache(t))

	first, err := s.ProcessRequest(context.Background(), "  Eggs,\n cheese ")
	require.NoError(t, err)
	second, err := s.ProcessRequest(context.Background(), "eggs, CHEESE")
	require.NoError(t, err)

	assert.Equal(t, "Omelette", first.Content)
	assert.False(t, first.CacheHit)
	assert.Equal(t, "Omelette", second.Content)
	assert.True(t, second.CacheHit)
	assert.Equal(t, []string{"Eggs, cheese"}, f.calls)
}

func TestService_WithoutCache(t *testing.T) {
	f := &fakeSuggester{reply: "Salad"}
	s := NewService(config.SuggestionConfig{Enabled: true}, f, nil)

	_, err := s.ProcessRequest(context.Background(), "lettuce")
	require.NoError(t, err)
	_, err = s.ProcessRequest(context.Background(), "lettuce")
	require.NoError(t, err)

	assert.Len(t, f.calls, 2)
}

func TestService_Disabled(t *testing.T) {
	f := &fakeSuggester{}
	s := NewService(config.SuggestionConfig{Enabled: false}, f, nil)

	_, err := s.ProcessRequest(context.Background(), "rice")

	assert.ErrorIs(t, err, common.ErrRemoteDisabled)
	assert.False(t, s.Enabled())
	assert.Empty(t, f.calls)
}

func TestService_EmptyInput(t *testing.T) {
	s := NewService(config.SuggestionConfig{Enabled: true}, &fakeSuggester{}, nil)

	_, err := s.ProcessRequest(context.Background(), " \n ")

	assert.True(t, common.IsValidationError(err))
}

func TestService_MinInterval(t *testing.T) {
	f := &fakeSuggester{reply: "Stew"}
	s := NewService(config.SuggestionConfig{Enabled: true, MinInterval: time.Minute}, f, newCache(t))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.ProcessRequest(context.Background(), "beef")
	require.NoError(t, err)

	_, err = s.ProcessRequest(context.Background(), "lamb")
	assert.ErrorIs(t, err, common.ErrRateLimited)

	resp, err := s.ProcessRequest(context.Background(), "beef")
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)

	now = now.Add(time.Minute)
	_, err = s.ProcessRequest(context.Background(), "lamb")
	require.NoError(t, err)
	assert.Equal(t, []string{"beef", "lamb"}, f.calls)
}

func TestService_UpstreamFailureIsNotCached(t *testing.T) {
	f := &fakeSuggester{err: common.ErrRemoteSuggestion.Wrap(errors.New("status 500"))}
	s := NewService(config.SuggestionConfig{Enabled: true}, f, newCache(t))

	_, err := s.ProcessRequest(context.Background(), "tofu")
	assert.ErrorIs(t, err, common.ErrRemoteSuggestion)

	f.err, f.reply = nil, "Mapo tofu"
	resp, err := s.ProcessRequest(context.Background(), "tofu")
	require.NoError(t, err)
	assert.Equal(t, "Mapo tofu", resp.Content)
	assert.Len(t, f.calls, 2)
}
