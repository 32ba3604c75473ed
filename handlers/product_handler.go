package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/models"
	"marketcart/usecases"
)

// ProductInvalidator drops cached catalog entries.
type ProductInvalidator interface {
	Invalidate(ctx context.Context, ids ...string) error
}

// ProductHandler serves the catalog view the cart checks against.
type ProductHandler struct {
	catalog usecases.ProductCatalog
	cache   ProductInvalidator
	log     logrus.FieldLogger
}

// NewProductHandler builds the handler. cache may be nil when products are not
// cached.
func NewProductHandler(catalog usecases.ProductCatalog, cache ProductInvalidator, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{catalog: catalog, cache: cache, log: log.WithField("component", "product_handler")}
}

type productResponse struct {
	ID     string `json:"id"`
	ShopID string `json:"shopId"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Stock  int    `json:"stock"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:     p.ID,
		ShopID: p.ShopID,
		Name:   p.Name,
		Price:  p.Price.StringFixed(2),
		Stock:  p.Stock,
	}
}

// GetProductDataHandler returns one product if buyers may see it.
func (h *ProductHandler) GetProductDataHandler(c *gin.Context) {
	product, ok, err := h.catalog.FindOneValidForDisplay(c.Request.Context(), c.Param("productID"))
	if err != nil {
		h.log.WithError(err).WithField("productId", c.Param("productID")).Error("product lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperr.Message(err)})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(product)})
}
