package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/server/http/dto"
)

// CartHandler serves cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /addToCart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := h.facade.AddToCart(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Error adding to cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart", "cart": toCartResponse(cart)})
}

// Get handles GET /getCart/:userId.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}
		respondError(c, err, "Error fetching cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart fetched successfully", "cart": toCartResponse(cart)})
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, dto.CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.LineTotal(),
		})
	}
	return dto.CartResponse{UserID: cart.UserID, Items: items, TotalPrice: cart.TotalPrice()}
}
