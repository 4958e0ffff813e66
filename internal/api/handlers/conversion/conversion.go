package conversion

import (
	"net/http"

	"reciplease/internal/core/convert"

	"github.com/gin-gonic/gin"
)

// Handler 換算表查詢處理程序
type Handler struct {
	table *convert.Table
}

// NewHandler 創建換算表查詢處理程序
func NewHandler(table *convert.Table) *Handler {
	return &Handler{table: table}
}

// HandleLookup 查詢單一食材的密度條目
func (h *Handler) HandleLookup(c *gin.Context) {
	key := c.Param("key")

	entry, ok := h.table.Lookup(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "conversion entry not found",
			"key":   key,
		})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// HandleKeys 列出所有食材鍵
func (h *Handler) HandleKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.table.Version(),
		"keys":    h.table.Keys(),
	})
}
