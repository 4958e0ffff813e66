package ingredient

import (
	"errors"
	"net/http"

	recipeService "reciplease/internal/core/recipe"
	"reciplease/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseRequest 單行解析請求
type ParseRequest struct {
	Line string `json:"line" binding:"required"`
}

// BatchRequest 批次解析請求
type BatchRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// Handler 食材解析處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食材解析處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleParse 解析單行食材文字
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.service.ParseLine(c.Request.Context(), req.Line)
	if err != nil {
		respondParseError(c, err, requestID)
		return
	}

	c.JSON(http.StatusOK, record)
}

// HandleBatch 批次解析食材文字
// 單行失敗不影響整批，失敗行收在 rejected
func (h *Handler) HandleBatch(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if len(req.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lines must not be empty"})
		return
	}

	result := h.service.ParseLines(c.Request.Context(), req.Lines)

	common.LogInfo("批次解析完成",
		zap.String("request_id", requestID),
		zap.Int("parsed", len(result.Records)),
		zap.Int("rejected", len(result.Rejected)),
	)

	c.JSON(http.StatusOK, result)
}

// respondParseError 依錯誤型別決定狀態碼
func respondParseError(c *gin.Context, err error, requestID string) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, gin.H{
			"error": customErr.Message,
			"code":  customErr.Code,
		})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	common.LogError("食材解析失敗",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingredient parsing failed"})
}

func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
