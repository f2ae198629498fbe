package model

// PlaceOrderInput carries checkout data supplied by the customer.
type PlaceOrderInput struct {
	UserID        string
	Address       Address
	PaymentMethod PaymentMethod
	PaymentInfo   *PaymentInfo
}

// PlaceOrderResult is the outcome of a successful placement. NotificationErr
// is set when the confirmation could not be queued; the order stands regardless.
type PlaceOrderResult struct {
	Order           *Order
	NotificationErr error
}
