package entities

import (
	"strings"
	"time"
)

type Category struct {
	CategoryID string
	ShopID     string
	ParentID   string
	Name       string
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) ValidateBasics() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.ShopID) != ""
}

type ProductType struct {
	ProductTypeID string
	Name          string
}

// Shop carries the per-shop settings the matching side needs, most notably
// the IANA timezone the hour condition evaluates in.
type Shop struct {
	ShopID   string
	Name     string
	Timezone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
