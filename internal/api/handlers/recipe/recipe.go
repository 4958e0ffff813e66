package recipe

import (
	"net/http"

	recipeService "reciplease/internal/core/recipe"
	"reciplease/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseRecipeRequest 食譜解析請求
// 食譜中繼資料由上游擷取管線提供
type ParseRecipeRequest struct {
	Domain      string   `json:"domain" binding:"required"`
	Path        string   `json:"path" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Servings    string   `json:"servings,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Ratings     *int     `json:"ratings,omitempty"`
	MakeAgain   *float64 `json:"make_again,omitempty"`
	Lines       []string `json:"lines" binding:"required"`
}

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleParseRecipe 解析並保存整份食譜的食材行
func (h *Handler) HandleParseRecipe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req ParseRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record := &common.RecipeRecord{
		Domain:      req.Domain,
		Path:        req.Path,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Servings:    req.Servings,
		Rating:      req.Rating,
		Ratings:     req.Ratings,
		MakeAgain:   req.MakeAgain,
		Lines:       req.Lines,
	}

	result, err := h.service.ParseRecipe(c.Request.Context(), record)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		common.LogError("食譜解析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("title", req.Title),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe parsing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domain":   req.Domain,
		"path":     req.Path,
		"records":  result.Records,
		"rejected": result.Rejected,
	})
}
