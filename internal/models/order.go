package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const DefaultQuantity = 1

var validate = validator.New()

type Order struct {
	ID        string          `json:"id"`
	OrderCode string          `json:"order_code"`
	Customer  json.RawMessage `json:"customer"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItem     `json:"items"`
}

type OrderItem struct {
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutRequest struct {
	Customer *Customer     `json:"customer" validate:"required"`
	Items    []CheckoutItem `json:"items" validate:"required,min=1"`
}

func (r *CheckoutRequest) Validate() error {
	return validate.Struct(r)
}

// Customer is free-form; only full_name and email are required. The
// original JSON object is kept so it can be stored verbatim.
type Customer struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required"`

	raw json.RawMessage
}

type customerFields struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	var fields customerFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	c.FullName = fields.FullName
	c.Email = fields.Email
	c.raw = append(c.raw[:0], bytes.TrimSpace(data)...)
	return nil
}

func (c Customer) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 && !bytes.Equal(c.raw, []byte("null")) {
		return c.raw, nil
	}
	return json.Marshal(customerFields{FullName: c.FullName, Email: c.Email})
}

// CheckoutItem decodes leniently: quantity and price may be JSON numbers or
// numeric strings, and fall back to DefaultQuantity and zero when absent or
// not numeric.
type CheckoutItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

func (i *CheckoutItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID json.RawMessage `json:"product_id"`
		Quantity  json.RawMessage `json:"quantity"`
		Price     json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	i.ProductID = textValue(raw.ProductID)

	i.Quantity = DefaultQuantity
	if q, ok := decimalValue(raw.Quantity); ok {
		i.Quantity = quantityValue(q)
	}

	i.Price = decimal.Zero
	if p, ok := decimalValue(raw.Price); ok {
		i.Price = p
	}

	return nil
}

func (i CheckoutItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductID string          `json:"product_id"`
		Quantity  int             `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
	}{i.ProductID, i.Quantity, i.Price})
}

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt)
	minQuantity = decimal.NewFromInt(math.MinInt)
)

// quantityValue truncates toward zero. Values outside int saturate instead of
// wrapping, so the int4 column rejects them at insert time.
func quantityValue(q decimal.Decimal) int {
	q = q.Truncate(0)
	switch {
	case q.GreaterThan(maxQuantity):
		return math.MaxInt
	case q.LessThan(minQuantity):
		return math.MinInt
	}
	return int(q.IntPart())
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func textValue(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func decimalValue(raw json.RawMessage) (decimal.Decimal, bool) {
	if isNull(raw) {
		return decimal.Zero, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		return d, err == nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, false
	}
	return d, true
}
