package recipe

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-catalog/internal/core/ai/heuristic"
	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/pkg/common"
)

// AssistantHandler 廚房助理：基於關鍵字的分析與建議
type AssistantHandler struct {
	store   *recipe.Store
	advisor *heuristic.Advisor
}

// NewAssistantHandler 創建廚房助理處理程序
func NewAssistantHandler(store *recipe.Store, advisor *heuristic.Advisor) *AssistantHandler {
	return &AssistantHandler{store: store, advisor: advisor}
}

// DifficultyRequest 難度估算請求
type DifficultyRequest struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// CuisineRequest 菜系判斷請求
type CuisineRequest struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// SuggestionRequest lists available ingredients either as a list or as one
// comma separated string.
type SuggestionRequest struct {
	Ingredients []string `json:"ingredients"`
	Text        string   `json:"text"`
}

// Register 註冊路由
func (h *AssistantHandler) Register(rg *gin.RouterGroup) {
	assistant := rg.Group("/assistant")
	{
		assistant.POST("/difficulty", h.EstimateDifficulty)
		assistant.POST("/cuisine", h.DetectCuisine)
		assistant.GET("/substitutions", h.Substitutions)
		assistant.GET("/shopping-list", h.ShoppingList)
		assistant.POST("/suggestions", h.Suggestions)
		assistant.GET("/meal-plan", h.MealPlan)
		assistant.GET("/analysis", h.Analysis)
	}
}

// EstimateDifficulty scores an ingredient and instruction list.
func (h *AssistantHandler) EstimateDifficulty(c *gin.Context) {
	var req DifficultyRequest
	if !BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"difficulty": h.advisor.EstimateDifficulty(req.Ingredients, req.Instructions)})
}

// DetectCuisine labels an ingredient list and name.
func (h *AssistantHandler) DetectCuisine(c *gin.Context) {
	var req CuisineRequest
	if !BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisine": h.advisor.DetectCuisine(req.Ingredients, req.Name)})
}

// Substitutions looks up one ingredient, or lists the whole table when no
// ingredient is given.
func (h *AssistantHandler) Substitutions(c *gin.Context) {
	ingredient := strings.TrimSpace(c.Query("ingredient"))
	if ingredient == "" {
		c.JSON(http.StatusOK, gin.H{"substitutions": h.advisor.CommonSubstitutions()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ingredient":    ingredient,
		"substitutions": h.advisor.SuggestSubstitutions(ingredient),
	})
}

// ShoppingList consolidates the ingredients of the recipes named by the ids
// query parameter, or of every favorite and to-try recipe when it is absent.
func (h *AssistantHandler) ShoppingList(c *gin.Context) {
	ids := heuristic.ParseIngredientList(c.Query("ids"))
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": h.advisor.PlannedShoppingList(h.store.List())})
		return
	}

	selected := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := h.store.Get(id)
		if err != nil {
			RespondError(c, err)
			return
		}
		selected = append(selected, r)
	}
	c.JSON(http.StatusOK, gin.H{"items": h.advisor.GenerateShoppingList(selected)})
}

// Suggestions ranks the collection against the available ingredients.
func (h *AssistantHandler) Suggestions(c *gin.Context) {
	var req SuggestionRequest
	if !BindJSON(c, &req) {
		return
	}
	available := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			available = append(available, ing)
		}
	}
	available = append(available, heuristic.ParseIngredientList(req.Text)...)
	if len(available) == 0 {
		RespondError(c, common.NewValidationError("at least one ingredient is required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ingredients": available,
		"recipes":     h.advisor.SuggestRecipesByIngredients(available, h.store.List()),
	})
}

// MealPlan builds the weekly plan from the collection.
func (h *AssistantHandler) MealPlan(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": heuristic.WeeklyMealPlan(h.store.List())})
}

// Analysis re-runs the classifiers over the collection. kind selects
// "difficulty" or "cuisine"; both are returned when it is empty.
func (h *AssistantHandler) Analysis(c *gin.Context) {
	recipes := h.store.List()
	switch kind := c.Query("kind"); kind {
	case "difficulty":
		c.JSON(http.StatusOK, gin.H{"difficulty": h.advisor.AnalyzeDifficulty(recipes)})
	case "cuisine":
		c.JSON(http.StatusOK, gin.H{"cuisine": h.advisor.AnalyzeCuisine(recipes)})
	case "":
		c.JSON(http.StatusOK, gin.H{
			"difficulty": h.advisor.AnalyzeDifficulty(recipes),
			"cuisine":    h.advisor.AnalyzeCuisine(recipes),
		})
	default:
		RespondError(c, common.NewValidationError("unknown analysis kind "+kind))
	}
}
