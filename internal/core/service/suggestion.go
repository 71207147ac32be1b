package service

import (
	"context"
	"fmt"
	"time"

	"recipe-catalog/internal/infrastructure/config"
	"recipe-catalog/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// suggestRequest 遠端請求內容
type suggestRequest struct {
	Ingredients string `json:"ingredients"`
}

// suggestResponse 遠端回應內容
type suggestResponse struct {
	Recipe string `json:"recipe"`
}

// SuggestionClient 遠端食譜建議服務
type SuggestionClient struct {
	endpoint string
	client   *resty.Client
}

// NewSuggestionClient 創建遠端建議客戶端
func NewSuggestionClient(cfg config.SuggestionConfig) *SuggestionClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &SuggestionClient{
		endpoint: cfg.Endpoint,
		client:   client,
	}
}

// Suggest posts the ingredient text and returns the suggested recipe text.
// Transport failures and non-2xx statuses wrap common.ErrRemoteSuggestion.
func (c *SuggestionClient) Suggest(ctx context.Context, ingredients string) (string, error) {
	start := time.Now()
	text, err := c.suggest(ctx, ingredients)
	common.LogRemoteCall(c.endpoint, time.Since(start), err)
	return text, err
}

func (c *SuggestionClient) suggest(ctx context.Context, ingredients string) (string, error) {
	var result suggestResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(suggestRequest{Ingredients: ingredients}).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		return "", common.ErrRemoteSuggestion.Wrap(fmt.Errorf("send request: %w", err))
	}

	if !resp.IsSuccess() {
		return "", common.ErrRemoteSuggestion.Wrap(fmt.Errorf("API request failed with status %d", resp.StatusCode()))
	}

	// resty only decodes JSON content types
	if result.Recipe == "" && len(resp.Body()) > 0 {
		if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
			return "", common.ErrRemoteSuggestion.Wrap(fmt.Errorf("parse response: %w", err))
		}
	}
	return result.Recipe, nil
}
