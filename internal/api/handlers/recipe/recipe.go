package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/pkg/common"
)

// Handler 食譜 CRUD 與篩選處理程序
type Handler struct {
	store *recipe.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(store *recipe.Store) *Handler {
	return &Handler{store: store}
}

// RecipeList is the list envelope.
type RecipeList struct {
	Recipes []recipe.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

func newRecipeList(recipes []recipe.Recipe) RecipeList {
	return RecipeList{Recipes: recipes, Total: len(recipes)}
}

// Register 註冊路由；createGuards 只套用於新增食譜
func (h *Handler) Register(rg *gin.RouterGroup, createGuards ...gin.HandlerFunc) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/search", h.Search)
		recipes.GET("/:id", h.Get)
		recipes.POST("", append(createGuards, h.Create)...)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}
	rg.GET("/cuisines", h.Cuisines)
	rg.GET("/filters", h.GetFilters)
	rg.PUT("/filters", h.SetFilters)
}

// List returns every recipe in insertion order.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, newRecipeList(h.store.List()))
}

// Search applies the stored filters. Filter keys given as query parameters
// override the stored values for this request only; an empty value clears
// that filter.
func (h *Handler) Search(c *gin.Context) {
	f := h.store.Filters()
	if err := c.ShouldBindQuery(&f); err != nil {
		RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if err := f.Validate(); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filters": f,
		"recipes": f.Apply(h.store.List()),
	})
}

// Get returns one recipe.
func (h *Handler) Get(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create adds a recipe from a draft.
func (h *Handler) Create(c *gin.Context) {
	var d recipe.Draft
	if !BindJSON(c, &d) {
		return
	}
	r, err := h.store.Add(c.Request.Context(), d)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+r.ID)
	c.JSON(http.StatusCreated, r)
}

// Update applies a partial update.
func (h *Handler) Update(c *gin.Context) {
	var p recipe.Patch
	if !BindJSON(c, &p) {
		return
	}
	r, err := h.store.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete removes a recipe.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cuisines lists the distinct cuisines for filter controls.
func (h *Handler) Cuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cuisines": h.store.Cuisines()})
}

// GetFilters returns the stored filters.
func (h *Handler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Filters())
}

// SetFilters replaces the stored filters wholesale.
func (h *Handler) SetFilters(c *gin.Context) {
	var f recipe.SearchFilters
	if !BindJSON(c, &f) {
		return
	}
	if err := h.store.SetFilters(f); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.Filters())
}
