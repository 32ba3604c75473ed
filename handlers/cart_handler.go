package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketcart/apperr"
	"marketcart/middleware"
	"marketcart/models"
	"marketcart/usecases"
)

type CartHandler struct {
	cases *usecases.UseCases
	log   logrus.FieldLogger
}

func NewCartHandler(cases *usecases.UseCases, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{cases: cases, log: log.WithField("component", "cart_handler")}
}

// GetCartHandler returns the buyer's active cart with availability refreshed.
func (h *CartHandler) GetCartHandler(c *gin.Context) {
	cart, err := h.cases.GetCart.Execute(c.Request.Context(), middleware.BuyerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusOK, cart)
}

func (h *CartHandler) AddItemHandler(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	cart, err := h.cases.AddItem.Execute(c.Request.Context(), usecases.AddItemInput{
		BuyerID:   middleware.BuyerID(c),
		CartID:    req.CartID,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateQuantityHandler(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	cart, err := h.cases.UpdateQuantity.Execute(c.Request.Context(), usecases.UpdateQuantityInput{
		BuyerID:  middleware.BuyerID(c),
		CartID:   c.Param("cartID"),
		ItemID:   c.Param("itemID"),
		Quantity: *req.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItemHandler(c *gin.Context) {
	cart, err := h.cases.RemoveItem.Execute(c.Request.Context(), middleware.BuyerID(c), c.Param("cartID"), c.Param("itemID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusOK, cart)
}

func (h *CartHandler) RefreshHandler(c *gin.Context) {
	cart, err := h.cases.Availability.Refresh(c.Request.Context(), middleware.BuyerID(c), c.Param("cartID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusOK, cart)
}

func (h *CartHandler) ShippingFeeHandler(c *gin.Context) {
	result, err := h.cases.ShippingFee.Execute(c.Request.Context(), usecases.ShippingFeeInput{
		BuyerID: middleware.BuyerID(c),
		CartID:  c.Param("cartID"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toShippingFeeResponse(result))
}

// CheckoutHandler is called by the order service, which acts for the buyer.
func (h *CartHandler) CheckoutHandler(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	cart, err := h.cases.Checkout.Execute(c.Request.Context(), req.BuyerID, c.Param("cartID"), req.OrderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cart(c, http.StatusOK, cart)
}

func (h *CartHandler) cart(c *gin.Context, status int, cart models.Cart) {
	c.JSON(status, gin.H{"cart": toCartResponse(cart)})
}

func (h *CartHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidRequest:
		status = http.StatusBadRequest
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"path":    c.FullPath(),
			"buyerId": middleware.BuyerID(c),
		}).Error("cart request failed")
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
