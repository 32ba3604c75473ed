package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type invalidateProductsRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,min=1,max=500,dive,productid"`
}

// InvalidateProductsHandler is called by the catalog service after it changes
// products, so the next cart check reads them fresh.
func (h *ProductHandler) InvalidateProductsHandler(c *gin.Context) {
	var req invalidateProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(c.Request.Context(), req.ProductIDs...); err != nil {
			h.log.WithError(err).WithField("count", len(req.ProductIDs)).Error("invalidate product cache failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}
