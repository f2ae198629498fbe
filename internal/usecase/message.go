package usecase

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

const confirmationSubject = "🛍️ Your Order Invoice - Thank You!"

const confirmationText = `Hello {{.Name}},

Your order has been placed successfully.

Order ID: {{.Order.OrderID}}
Total: ₹{{money .Order.TotalPrice}}
Payment: {{.Order.PaymentMethod}}

We will notify you once it is shipped.

- {{.Shop}}`

const confirmationHTML = `<h2>Thank You for Your Order, {{.Name}}!</h2>
<p><strong>Order ID:</strong> {{.Order.OrderID}}</p>
<p><strong>Order Summary:</strong></p>
<ul>
{{- range .Order.Items}}
<li>{{.ProductName}} - {{.Quantity}} x ₹{{money .Price}} = ₹{{money .Total}}</li>
{{- end}}
</ul>
<p><strong>Total Amount:</strong> ₹{{money .Order.TotalPrice}}</p>
<p><strong>Payment Method:</strong> {{.Order.PaymentMethod}}</p>
<p><strong>Delivery Address:</strong> {{.Address}}</p>
<p>We will notify you once your order is shipped.</p>
<br>
<p>Thanks for shopping with us! 😊</p>
<strong>{{.Shop}}</strong>
`

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MessageComposer renders order confirmation emails.
type MessageComposer struct {
	shop string
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewMessageComposer parses confirmation templates signed with shop name.
func NewMessageComposer(shop string) *MessageComposer {
	funcs := map[string]any{"money": money}
	return &MessageComposer{
		shop: shop,
		text: texttemplate.Must(texttemplate.New("text").Funcs(funcs).Parse(confirmationText)),
		html: htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(confirmationHTML)),
	}
}

type confirmationData struct {
	Name    string
	Shop    string
	Order   *model.Order
	Address string
}

// Confirmation builds the email sent to the customer after an order is placed.
func (c *MessageComposer) Confirmation(order *model.Order, user *model.User) (model.Message, error) {
	data := confirmationData{
		Name:    user.Name,
		Shop:    c.shop,
		Order:   order,
		Address: formatAddress(order.Address),
	}

	var text, html bytes.Buffer
	if err := c.text.Execute(&text, data); err != nil {
		return model.Message{}, fmt.Errorf("render text: %w", err)
	}
	if err := c.html.Execute(&html, data); err != nil {
		return model.Message{}, fmt.Errorf("render html: %w", err)
	}

	return model.Message{
		To:      user.Email,
		Subject: confirmationSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func formatAddress(a model.Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
