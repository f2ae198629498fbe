package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under their wire names.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domainErrors.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{domainErrors.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{domainErrors.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{domainErrors.ErrEmptyCart, http.StatusBadRequest, "Cart is empty. Add items before placing an order."},
	{domainErrors.ErrMissingPaymentDetails, http.StatusBadRequest, "Missing payment details for online payment."},
	{domainErrors.ErrInvalidPaymentMethod, http.StatusBadRequest, "Invalid payment method"},
	{domainErrors.ErrInvalidStatus, http.StatusBadRequest, "Status must not be empty"},
	{domainErrors.ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be positive"},
	{domainErrors.ErrInvalidPrice, http.StatusBadRequest, "Price must be positive"},
	{domainErrors.ErrInvalidUser, http.StatusBadRequest, "Invalid user data"},
	{domainErrors.ErrInvalidCategory, http.StatusBadRequest, "Category name is required"},
	{domainErrors.ErrOrderInProgress, http.StatusConflict, "Another order is being placed for this user"},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "Resource already exists"},
	{domainErrors.ErrNotFound, http.StatusNotFound, "Resource not found"},
}

// respondError writes the mapped status for known domain errors. Store
// failures and anything unmapped become a 500 carrying only the fallback
// message; the cause is attached to the gin context for the request logger.
func respondError(c *gin.Context, err error, fallback string) {
	var pErr *domainErrors.PersistenceError
	if errors.As(err, &pErr) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, gin.H{"message": m.message})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

// respondBindError reports malformed or invalid request bodies.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
