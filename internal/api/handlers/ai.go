package handlers

import (
	"net/http"

	"recipe-catalog/internal/api/handlers/recipe"
	"recipe-catalog/internal/api/middleware"
	"recipe-catalog/internal/core/ai/service"

	"github.com/gin-gonic/gin"
)

// AIHandler proxies the remote suggestion service.
type AIHandler struct {
	aiService *service.Service
	metrics   *middleware.Metrics
}

// NewAIHandler creates the handler. metrics may be nil.
func NewAIHandler(aiService *service.Service, metrics *middleware.Metrics) *AIHandler {
	return &AIHandler{
		aiService: aiService,
		metrics:   metrics,
	}
}

// SuggestRequest 遠端建議請求
type SuggestRequest struct {
	Ingredients string `json:"ingredients"`
}

// Suggest 取得遠端食譜建議
func (h *AIHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if !recipe.BindJSON(c, &req) {
		return
	}

	response, err := h.aiService.ProcessRequest(c.Request.Context(), req.Ingredients)
	if err != nil {
		h.observe("error")
		recipe.RespondError(c, err)
		return
	}

	if response.CacheHit {
		h.observe("cached")
	} else {
		h.observe("ok")
	}
	c.JSON(http.StatusOK, response)
}

func (h *AIHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveRemote(outcome)
	}
}
