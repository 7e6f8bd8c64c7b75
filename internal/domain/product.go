package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	InStock       bool     `json:"inStock"`
	Discount      *int     `json:"discount,omitempty"`
}

// ProductPatch carries the fields of a partial product update. Nil fields are
// left untouched, except that an explicit "originalPrice": null removes the
// original price. The discount is not patchable; it always follows the prices.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       *int     `json:"reviews,omitempty"`
	InStock       *bool    `json:"inStock,omitempty"`

	ClearOriginalPrice bool `json:"-"`
}

func (patch *ProductPatch) UnmarshalJSON(data []byte) error {
	type plain ProductPatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["originalPrice"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		decoded.ClearOriginalPrice = true
	}

	*patch = ProductPatch(decoded)
	return nil
}

// Apply merges the patch into p and recomputes p.Discount.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ClearOriginalPrice {
		p.OriginalPrice = nil
	} else if patch.OriginalPrice != nil {
		v := *patch.OriginalPrice
		p.OriginalPrice = &v
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Reviews != nil {
		p.Reviews = *patch.Reviews
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	p.Discount = Int(p.DiscountPercent())
}

// DiscountPercent returns the rounded percentage saved against OriginalPrice.
// It is 0 when there is no original price or it does not exceed Price.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	orig := *p.OriginalPrice
	return int(math.Round((orig - p.Price) / orig * 100))
}

// NewID returns a millisecond timestamp followed by a 9 character random suffix.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strconv.FormatInt(t.UnixMilli(), 10) + suffix
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
