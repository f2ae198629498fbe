package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/server/http/dto"
	testhelpers "github.com/polkiloo/electrohub/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Message string              `json:"message"`
	Errors  []string            `json:"errors"`
	Order   *dto.OrderResponse  `json:"order"`
	Orders  []dto.OrderResponse `json:"orders"`
	Cart    *dto.CartResponse   `json:"cart"`
	Data    json.RawMessage     `json:"data"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return env
}

func TestPlaceOrder(t *testing.T) {
	var got model.PlaceOrderInput
	facade := testhelpers.OrderFacadeStub{PlaceFn: func(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
		got = in
		return &model.PlaceOrderResult{
			Order: &model.Order{
				OrderID:       "ORD-1a2b3c4d",
				UserID:        in.UserID,
				Username:      "Asha",
				Items:         []model.OrderItem{{ProductID: "p1", ProductName: "Headphones", Quantity: 2, Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(200)}},
				TotalPrice:    decimal.NewFromInt(200),
				Address:       in.Address,
				PaymentMethod: in.PaymentMethod,
				PaymentInfo:   in.PaymentInfo,
				Status:        model.OrderStatusPlaced,
			},
			NotificationErr: errors.New("mail queue down"),
		}, nil
	}}

	body := []byte(`{"userId":"u1","address":{"street":"1 MG Road","city":"Pune","state":"MH","postalCode":"411001"},"paymentMethod":"Online","paymentInfo":{"paymentId":"pay_1","status":"captured"}}`)
	resp := performRequest(t, http.MethodPost, "/placeOrder", "/placeOrder", NewOrderHandler(facade).Place, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	if got.UserID != "u1" || got.Address.City != "Pune" || got.PaymentMethod != model.PaymentMethodOnline {
		t.Fatalf("unexpected input passed to facade: %+v", got)
	}
	if got.PaymentInfo == nil || got.PaymentInfo.PaymentID != "pay_1" {
		t.Fatalf("expected payment info to be forwarded, got %+v", got.PaymentInfo)
	}

	env := decode(t, resp)
	if env.Message != "Order placed successfully" || env.Order == nil {
		t.Fatalf("unexpected response %+v", env)
	}
	if env.Order.OrderID != "ORD-1a2b3c4d" || !env.Order.TotalPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected order in response %+v", env.Order)
	}
	if len(env.Order.Items) != 1 || !env.Order.Items[0].Total.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected items %+v", env.Order.Items)
	}
	if env.Order.Status != "Placed" || env.Order.PaymentInfo == nil {
		t.Fatalf("unexpected status or payment info %+v", env.Order)
	}
}

func TestPlaceOrderPassesUserIDThrough(t *testing.T) {
	const userID = "5b0c3c52-5f0e-4a55-9a59-2f9d3f1e7a10"
	facade := testhelpers.OrderFacadeStub{PlaceFn: func(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
		if in.UserID != userID {
			t.Fatalf("expected user id %q, got %q", userID, in.UserID)
		}
		if in.PaymentInfo != nil {
			t.Fatalf("expected no payment info, got %+v", in.PaymentInfo)
		}
		return &model.PlaceOrderResult{Order: &model.Order{OrderID: "ORD-1", UserID: in.UserID}}, nil
	}}

	body, _ := json.Marshal(dto.PlaceOrderRequest{
		UserID:        userID,
		Address:       &dto.AddressPayload{Street: "s", City: "c"},
		PaymentMethod: "Cash on Delivery",
	})
	resp := performRequest(t, http.MethodPost, "/placeOrder", "/placeOrder", NewOrderHandler(facade).Place, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestPlaceOrderFailures(t *testing.T) {
	valid := []byte(`{"userId":"u1","address":{"street":"s"},"paymentMethod":"Offline"}`)
	failWith := func(err error) testhelpers.OrderFacadeStub {
		return testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
			return nil, err
		}}
	}

	tests := []struct {
		name    string
		facade  testhelpers.OrderFacadeStub
		body    []byte
		status  int
		message string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "user not found", body: valid, facade: failWith(domainErrors.ErrUserNotFound), status: http.StatusNotFound, message: "User not found"},
		{name: "empty cart", body: valid, facade: failWith(domainErrors.ErrEmptyCart), status: http.StatusBadRequest, message: "Cart is empty. Add items before placing an order."},
		{name: "missing payment", body: valid, facade: failWith(domainErrors.ErrMissingPaymentDetails), status: http.StatusBadRequest, message: "Missing payment details for online payment."},
		{name: "invalid method", body: valid, facade: failWith(domainErrors.ErrInvalidPaymentMethod), status: http.StatusBadRequest, message: "Invalid payment method"},
		{name: "in progress", body: valid, facade: failWith(domainErrors.ErrOrderInProgress), status: http.StatusConflict},
		{name: "persistence", body: valid, facade: failWith(&domainErrors.PersistenceError{Op: "create order", Err: errors.New("connection reset")}), status: http.StatusInternalServerError, message: "Error placing order"},
		{name: "id collisions exhausted", body: valid, facade: failWith(&domainErrors.PersistenceError{Op: "create order", Err: domainErrors.ErrAlreadyExists}), status: http.StatusInternalServerError, message: "Error placing order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/placeOrder", "/placeOrder", NewOrderHandler(tt.facade).Place, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.message != "" {
				if env := decode(t, resp); env.Message != tt.message {
					t.Fatalf("expected message %q, got %q", tt.message, env.Message)
				}
			}
			if bytes.Contains(resp.Body.Bytes(), []byte("connection reset")) {
				t.Fatalf("internal error leaked into response: %s", resp.Body.String())
			}
		})
	}
}

func TestPlaceOrderValidationErrors(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/placeOrder", "/placeOrder", NewOrderHandler(testhelpers.OrderFacadeStub{}).Place, []byte(`{"paymentMethod":"Offline"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	env := decode(t, resp)
	if env.Message != "Validation failed" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if len(env.Errors) != 2 || env.Errors[0] != "userId" || env.Errors[1] != "address" {
		t.Fatalf("expected userId and address errors, got %v", env.Errors)
	}
}

func TestPlaceOrderCartNotCleared(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
		return &model.PlaceOrderResult{Order: &model.Order{OrderID: "ORD-kept"}},
			fmt.Errorf("%w: %w", domainErrors.ErrCartNotCleared, errors.New("delete failed"))
	}}
	body := []byte(`{"userId":"u1","address":{},"paymentMethod":"Offline"}`)
	resp := performRequest(t, http.MethodPost, "/placeOrder", "/placeOrder", NewOrderHandler(facade).Place, body, jsonHeaders)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	env := decode(t, resp)
	if env.Order == nil || env.Order.OrderID != "ORD-kept" {
		t.Fatalf("expected persisted order in body, got %+v", env)
	}
}

func TestAllOrders(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{AllFn: func(context.Context) ([]model.Order, error) {
		product := model.Product{ID: "p1", Name: "Headphones v2", Price: decimal.NewFromInt(120)}
		return []model.Order{{
			OrderID:  "ORD-1",
			UserID:   "u1",
			Customer: &model.User{ID: "u1", Name: "Asha", Email: "asha@example.com", PasswordHash: "secret"},
			Items:    []model.OrderItem{{ProductID: "p1", ProductName: "Headphones", Quantity: 1, Product: &product}},
		}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/allOrders", "/allOrders", NewOrderHandler(facade).All, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env := decode(t, resp)
	if len(env.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(env.Orders))
	}
	order := env.Orders[0]
	if order.Customer == nil || order.Customer.Email != "asha@example.com" {
		t.Fatalf("expected resolved customer, got %+v", order.Customer)
	}
	if order.Items[0].Product == nil || order.Items[0].Product.Name != "Headphones v2" {
		t.Fatalf("expected current product data, got %+v", order.Items[0].Product)
	}
	if order.Items[0].ProductName != "Headphones" {
		t.Fatalf("expected snapshot name preserved, got %q", order.Items[0].ProductName)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("secret")) {
		t.Fatal("password hash leaked into response")
	}

	failing := testhelpers.OrderFacadeStub{AllFn: func(context.Context) ([]model.Order, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/allOrders", "/allOrders", NewOrderHandler(failing).All, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestUserOrders(t *testing.T) {
	var requested string
	facade := testhelpers.OrderFacadeStub{ByUserFn: func(ctx context.Context, userID string) ([]model.Order, error) {
		requested = userID
		return []model.Order{{OrderID: "ORD-2"}, {OrderID: "ORD-1"}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/getUserOrders/:userId", "/getUserOrders/u42", NewOrderHandler(facade).ByUser, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if requested != "u42" {
		t.Fatalf("expected user id from path, got %q", requested)
	}
	env := decode(t, resp)
	if len(env.Orders) != 2 || env.Orders[0].OrderID != "ORD-2" {
		t.Fatalf("expected order preserved, got %+v", env.Orders)
	}
	if env.Message != "User orders fetched successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRequest(t, http.MethodPut, "/updateOrderStatus/:orderId", "/updateOrderStatus/ORD-1", handler.UpdateStatus, []byte(`{"status":"Shipped"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env := decode(t, resp)
	if env.Order == nil || env.Order.OrderID != "ORD-1" || env.Order.Status != "Shipped" {
		t.Fatalf("unexpected order %+v", env.Order)
	}

	resp = performRequest(t, http.MethodPut, "/updateOrderStatus/:orderId", "/updateOrderStatus/ORD-1", handler.UpdateStatus, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing status, got %d", resp.Code)
	}
	if env := decode(t, resp); len(env.Errors) != 1 || env.Errors[0] != "status" {
		t.Fatalf("expected status field error, got %v", env.Errors)
	}

	missing := NewOrderHandler(testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, string, string) (*model.Order, error) {
		return nil, domainErrors.ErrOrderNotFound
	}})
	resp = performRequest(t, http.MethodPut, "/updateOrderStatus/:orderId", "/updateOrderStatus/ORD-x", missing.UpdateStatus, []byte(`{"status":"Shipped"}`), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCancelOrder(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRequest(t, http.MethodDelete, "/cancelOrder/:orderId", "/cancelOrder/ORD-1", handler.Cancel, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env := decode(t, resp)
	if env.Message != "Order cancelled and items restored to cart" || env.Order == nil || env.Order.OrderID != "ORD-1" {
		t.Fatalf("unexpected response %+v", env)
	}

	missing := NewOrderHandler(testhelpers.OrderFacadeStub{CancelFn: func(context.Context, string) (*model.Order, error) {
		return nil, domainErrors.ErrOrderNotFound
	}})
	resp = performRequest(t, http.MethodDelete, "/cancelOrder/:orderId", "/cancelOrder/ORD-x", missing.Cancel, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCatalogProducts(t *testing.T) {
	var added model.Product
	facade := testhelpers.CatalogFacadeStub{AddProductFn: func(ctx context.Context, p model.Product) (*model.Product, error) {
		added = p
		p.ID = "p1"
		return &p, nil
	}}
	handler := NewCatalogHandler(facade)

	body := []byte(`{"product_name":"Speaker","product_price":49.99,"product_category":"Audio","product_image":"https://cdn.example.com/s.png"}`)
	resp := performRequest(t, http.MethodPost, "/addProduct", "/addProduct", handler.AddProduct, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !added.Price.Equal(decimal.RequireFromString("49.99")) || added.Category != "Audio" {
		t.Fatalf("unexpected product passed to facade %+v", added)
	}

	resp = performRequest(t, http.MethodPost, "/addProduct", "/addProduct", handler.AddProduct, []byte(`{"product_name":"Speaker","product_image":"not a url"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	env := decode(t, resp)
	if len(env.Errors) != 3 {
		t.Fatalf("expected price, category and image errors, got %v", env.Errors)
	}

	invalidPrice := NewCatalogHandler(testhelpers.CatalogFacadeStub{AddProductFn: func(context.Context, model.Product) (*model.Product, error) {
		return nil, domainErrors.ErrInvalidPrice
	}})
	resp = performRequest(t, http.MethodPost, "/addProduct", "/addProduct", invalidPrice.AddProduct, []byte(`{"product_name":"x","product_price":0,"product_category":"Audio"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-positive price, got %d", resp.Code)
	}
}

func TestCatalogProductLookup(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{ProductFn: func(ctx context.Context, id string) (*model.Product, error) {
		if id != "p1" {
			return nil, domainErrors.ErrProductNotFound
		}
		return &model.Product{ID: id, Name: "Headphones", Category: "Audio", CategoryDetails: &model.Category{ID: "c1", Name: "Audio"}}, nil
	}}
	handler := NewCatalogHandler(facade)

	resp := performRequest(t, http.MethodGet, "/getProductById/:id", "/getProductById/p1", handler.Product, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var product dto.ProductResponse
	if err := json.Unmarshal(decode(t, resp).Data, &product); err != nil {
		t.Fatalf("failed to decode product: %v", err)
	}
	if product.CategoryDetails == nil || product.CategoryDetails.Name != "Audio" {
		t.Fatalf("expected category details, got %+v", product.CategoryDetails)
	}

	resp = performRequest(t, http.MethodGet, "/getProductById/:id", "/getProductById/missing", handler.Product, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCatalogEditAndDelete(t *testing.T) {
	var edited model.Product
	facade := testhelpers.CatalogFacadeStub{
		UpdateProductFn: func(ctx context.Context, p model.Product) (*model.Product, error) {
			edited = p
			return &p, nil
		},
		DeleteProductFn: func(ctx context.Context, id string) error {
			if id == "gone" {
				return domainErrors.ErrProductNotFound
			}
			return nil
		},
	}
	handler := NewCatalogHandler(facade)

	body := []byte(`{"product_name":"Speaker Pro","product_price":"59.50","product_category":"Audio"}`)
	resp := performRequest(t, http.MethodPut, "/editProduct/:id", "/editProduct/p9", handler.UpdateProduct, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if edited.ID != "p9" || edited.Name != "Speaker Pro" {
		t.Fatalf("expected id from path, got %+v", edited)
	}

	resp = performRequest(t, http.MethodDelete, "/deleteProduct/:id", "/deleteProduct/p9", handler.DeleteProduct, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/deleteProduct/:id", "/deleteProduct/gone", handler.DeleteProduct, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCatalogCategories(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/addCategory", "/addCategory", handler.AddCategory, []byte(`{"category_name":"Audio"}`), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	duplicate := NewCatalogHandler(testhelpers.CatalogFacadeStub{AddCategoryFn: func(context.Context, string) (*model.Category, error) {
		return nil, domainErrors.ErrAlreadyExists
	}})
	resp = performRequest(t, http.MethodPost, "/addCategory", "/addCategory", duplicate.AddCategory, []byte(`{"category_name":"Audio"}`), jsonHeaders)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/getCategories", "/getCategories", handler.Categories, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var categories []dto.CategoryResponse
	if err := json.Unmarshal(decode(t, resp).Data, &categories); err != nil || len(categories) != 1 {
		t.Fatalf("unexpected categories %v err=%v", categories, err)
	}
}

func TestCartHandler(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/addToCart", "/addToCart", handler.Add, []byte(`{"userId":"u1","productId":"p1","quantity":2}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	env := decode(t, resp)
	if env.Cart == nil || !env.Cart.TotalPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected cart total 200, got %+v", env.Cart)
	}

	resp = performRequest(t, http.MethodPost, "/addToCart", "/addToCart", handler.Add, []byte(`{"userId":"u1","productId":"p1","quantity":0}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for zero quantity, got %d", resp.Code)
	}

	unknown := NewCartHandler(testhelpers.CartFacadeStub{
		AddFn: func(context.Context, string, string, int) (*model.Cart, error) {
			return nil, domainErrors.ErrProductNotFound
		},
		GetFn: func(context.Context, string) (*model.Cart, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	resp = performRequest(t, http.MethodPost, "/addToCart", "/addToCart", unknown.Add, []byte(`{"userId":"u1","productId":"p404","quantity":1}`), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/getCart/:userId", "/getCart/u1", unknown.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if env := decode(t, resp); env.Message != "Cart not found" {
		t.Fatalf("unexpected message %q", env.Message)
	}

	resp = performRequest(t, http.MethodGet, "/getCart/:userId", "/getCart/u1", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestUserHandler(t *testing.T) {
	handler := NewUserHandler(testhelpers.UserFacadeStub{})
	body := []byte(`{"user_name":"Asha","user_email":"asha@example.com","user_password":"pw123456"}`)
	resp := performRequest(t, http.MethodPost, "/addUser", "/addUser", handler.Add, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("hash:")) {
		t.Fatal("password hash leaked into response")
	}

	resp = performRequest(t, http.MethodPost, "/addUser", "/addUser", handler.Add, []byte(`{"user_name":"Asha","user_email":"nope","user_password":"x"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if env := decode(t, resp); len(env.Errors) != 1 || env.Errors[0] != "user_email" {
		t.Fatalf("expected user_email error, got %v", env.Errors)
	}

	duplicate := NewUserHandler(testhelpers.UserFacadeStub{AddFn: func(context.Context, string, string, string) (*model.User, error) {
		return nil, domainErrors.ErrAlreadyExists
	}})
	resp = performRequest(t, http.MethodPost, "/addUser", "/addUser", duplicate.Add, body, jsonHeaders)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/getUser/:id", "/getUser/u1", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var user dto.UserResponse
	if err := json.Unmarshal(decode(t, resp).Data, &user); err != nil || user.ID != "u1" {
		t.Fatalf("unexpected user %+v err=%v", user, err)
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("secret-hash")) {
		t.Fatal("password hash leaked into response")
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{Err: errors.New("down")}).Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestRespondErrorTreatsStoreFailuresAsInternal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "wrapped conflict", err: &domainErrors.PersistenceError{Op: "create order", Err: domainErrors.ErrAlreadyExists}},
		{name: "wrapped not found", err: &domainErrors.PersistenceError{Op: "cancel order", Err: domainErrors.ErrNotFound}},
		{name: "wrapped twice", err: fmt.Errorf("checkout: %w", &domainErrors.PersistenceError{Op: "load cart", Err: domainErrors.ErrNotFound})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			respondError(c, tt.err, "Error cancelling order")
			if recorder.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", recorder.Code)
			}
			if env := decode(t, recorder); env.Message != "Error cancelling order" {
				t.Fatalf("unexpected message %q", env.Message)
			}
			if len(c.Errors) != 1 {
				t.Fatalf("expected cause attached to context, got %v", c.Errors)
			}
		})
	}
}

func TestRespondErrorAttachesCause(t *testing.T) {
	cause := errors.New("pool exhausted")
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, cause, "Error fetching orders")
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", recorder.Code)
	}
	if len(c.Errors) != 1 || !errors.Is(c.Errors[0].Err, cause) {
		t.Fatalf("expected cause attached to context, got %v", c.Errors)
	}
}
