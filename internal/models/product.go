package models

import (
	"encoding/json"
	"time"
)

// Product is a catalog entry. CustomAttributes is the schema-less behavior
// bag; it is stored as a JSON text column and re-normalized on every read.
type Product struct {
	ID         string    `json:"id" gorm:"primary_key"`
	SKU        string    `json:"sku" gorm:"unique_index"`
	Name       string    `json:"name"`
	Barcode    string    `json:"barcode"`
	Dimensions string    `json:"dimensions"` // free text, "LxWxH"
	RawAttrs   string    `json:"-" gorm:"column:custom_attributes;type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustomAttributes decodes the stored attribute bag. A missing or corrupt
// column reads as an empty bag rather than an error; the schema layer
// supplies defaults either way.
func (p *Product) CustomAttributes() map[string]interface{} {
	if p.RawAttrs == "" {
		return map[string]interface{}{}
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal([]byte(p.RawAttrs), &attrs); err != nil {
		return map[string]interface{}{}
	}
	return attrs
}

// SetCustomAttributes encodes the attribute bag for storage.
func (p *Product) SetCustomAttributes(attrs map[string]interface{}) error {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	p.RawAttrs = string(raw)
	return nil
}

// MarshalJSON inlines the decoded attribute bag so API responses carry the
// same custom_attributes object the store persists.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		CustomAttributes map[string]interface{} `json:"custom_attributes"`
	}{
		alias:            alias(p),
		CustomAttributes: p.CustomAttributes(),
	})
}
