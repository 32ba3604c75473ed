package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"marketcart/models"
)

type addItemRequest struct {
	CartID    string  `json:"cartId" binding:"omitempty,max=36"`
	ProductID string  `json:"productId" binding:"required,productid"`
	VariantID *string `json:"variantId" binding:"omitempty,max=64"`
	Quantity  int     `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	BuyerID string  `json:"buyerId" binding:"required"`
	OrderID *string `json:"orderId" binding:"omitempty,max=64"`
}

type cartItemResponse struct {
	ID                string          `json:"id"`
	ShopID            string          `json:"shopId"`
	ProductID         string          `json:"productId"`
	VariantID         *string         `json:"variantId,omitempty"`
	ProductName       string          `json:"productName"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
	Available         bool            `json:"available"`
	UnavailableReason *string         `json:"unavailableReason,omitempty"`
}

// cartResponse is the buyer-facing cart. It carries no owner id.
type cartResponse struct {
	ID         string             `json:"id"`
	IsCheckout bool               `json:"isCheckout"`
	OrderID    *string            `json:"orderId,omitempty"`
	Items      []cartItemResponse `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func toCartResponse(cart models.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ID:                item.ID,
			ShopID:            item.ShopID,
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			Price:             item.Price,
			LineTotal:         item.LineTotal(),
			Available:         item.Available,
			UnavailableReason: item.UnavailableReason,
		})
	}
	return cartResponse{
		ID:         cart.ID,
		IsCheckout: cart.IsCheckout,
		OrderID:    cart.OrderID,
		Items:      items,
		Subtotal:   cart.Subtotal(),
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}

type shippingProductResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type productShippingFeeResponse struct {
	Product     shippingProductResponse `json:"product"`
	Qty         int                     `json:"qty"`
	ShippingFee decimal.Decimal         `json:"shippingFee"`
}

type shopShippingFeeResponse struct {
	ShopID             string                       `json:"shopId"`
	Products           []productShippingFeeResponse `json:"products"`
	TotalShippingFee   decimal.Decimal              `json:"totalShippingFee"`
	FreeShippingAmount *decimal.Decimal             `json:"freeShippingAmount,omitempty"`
}

type shippingFeeResponse struct {
	CartTotalShippingFee decimal.Decimal           `json:"cartTotalShippingFee"`
	ShopShippingFee      []shopShippingFeeResponse `json:"shopShippingFee"`
}

func toShippingFeeResponse(result models.ShippingFeeResult) shippingFeeResponse {
	shops := make([]shopShippingFeeResponse, 0, len(result.ShopShippingFee))
	for _, shop := range result.ShopShippingFee {
		products := make([]productShippingFeeResponse, 0, len(shop.Products))
		for _, p := range shop.Products {
			products = append(products, productShippingFeeResponse{
				Product: shippingProductResponse{
					ProductID: p.Product.ProductID,
					Name:      p.Product.Name,
					Price:     p.Product.Price,
				},
				Qty:         p.Qty,
				ShippingFee: p.ShippingFee,
			})
		}
		shops = append(shops, shopShippingFeeResponse{
			ShopID:             shop.ShopID,
			Products:           products,
			TotalShippingFee:   shop.TotalShippingFee,
			FreeShippingAmount: shop.FreeShippingAmount,
		})
	}
	return shippingFeeResponse{
		CartTotalShippingFee: result.CartTotalShippingFee,
		ShopShippingFee:      shops,
	}
}
