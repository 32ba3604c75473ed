package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketcart/handlers"
	"marketcart/jwt"
	"marketcart/middleware"
)

func SetupRouters(cart *handlers.CartHandler, products *handlers.ProductHandler, tokens middleware.TokenVerifier, log logrus.FieldLogger) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	// gin.Default without its stdout logger; requests are logged through logrus
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	// CORS preflight
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	// liveness
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(tokens, log))

	// product detail, no login needed
	api.GET("/products/:productID", products.GetProductDataHandler)

	// buyer cart, login required
	carts := api.Group("/carts")
	carts.Use(middleware.CheckLoginMiddleware())
	{
		// active cart, created on first access
		carts.GET("", cart.GetCartHandler)
		// add a product to the cart
		carts.POST("/items", cart.AddItemHandler)
		// change an item's quantity, 0 removes it
		carts.PATCH("/:cartID/items/:itemID", cart.UpdateQuantityHandler)
		// remove an item
		carts.DELETE("/:cartID/items/:itemID", cart.RemoveItemHandler)
		// recheck item availability against the catalog
		carts.POST("/:cartID/refresh", cart.RefreshHandler)
		// shipping fee per shop
		carts.GET("/:cartID/shipping-fee", cart.ShippingFeeHandler)
	}

	// called by other services, service role required
	internal := api.Group("/internal")
	internal.Use(middleware.CheckLoginMiddleware(), middleware.RequireRoleMiddleware(jwt.RoleService))
	{
		// mark a cart checked out once its order exists
		internal.POST("/carts/:cartID/checkout", cart.CheckoutHandler)
		// drop cached products after a catalog change
		internal.POST("/products/invalidate", products.InvalidateProductsHandler)
	}

	return router, nil
}
