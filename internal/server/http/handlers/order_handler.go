package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /placeOrder.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := model.PlaceOrderInput{
		UserID: req.UserID,
		Address: model.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
		},
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	}
	if req.PaymentInfo != nil {
		in.PaymentInfo = &model.PaymentInfo{PaymentID: req.PaymentInfo.PaymentID, Status: req.PaymentInfo.Status}
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCartNotCleared) && result != nil && result.Order != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Order placed but the cart could not be cleared",
				"order":   toOrderResponse(*result.Order),
			})
			return
		}
		respondError(c, err, "Error placing order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   toOrderResponse(*result.Order),
	})
}

// All handles GET /allOrders.
func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "orders": toOrderResponses(orders)})
}

// ByUser handles GET /getUserOrders/:userId.
func (h *OrderHandler) ByUser(c *gin.Context) {
	orders, err := h.facade.UserOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Error fetching orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User orders fetched successfully", "orders": toOrderResponses(orders)})
}

// UpdateStatus handles PUT /updateOrderStatus/:orderId.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		respondError(c, err, "Error updating order status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": toOrderResponse(*order)})
}

// Cancel handles DELETE /cancelOrder/:orderId.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err, "Error cancelling order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled and items restored to cart", "order": toOrderResponse(*order)})
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		line := dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		}
		if item.Product != nil {
			p := toProductResponse(*item.Product)
			line.Product = &p
		}
		items = append(items, line)
	}

	resp := dto.OrderResponse{
		OrderID:  order.OrderID,
		UserID:   order.UserID,
		Username: order.Username,
		Items:    items,
		Address: dto.AddressPayload{
			Street:     order.Address.Street,
			City:       order.Address.City,
			State:      order.Address.State,
			PostalCode: order.Address.PostalCode,
		},
		TotalPrice:    order.TotalPrice,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.PaymentInfo != nil {
		resp.PaymentInfo = &dto.PaymentInfoPayload{PaymentID: order.PaymentInfo.PaymentID, Status: order.PaymentInfo.Status}
	}
	if order.Customer != nil {
		resp.Customer = &dto.CustomerResponse{ID: order.Customer.ID, Name: order.Customer.Name, Email: order.Customer.Email}
	}
	return resp
}
