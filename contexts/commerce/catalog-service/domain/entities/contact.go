package entities

import (
	"strings"
	"time"
)

type ContactGroup struct {
	GroupID string
	ShopID  string
	Name    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g ContactGroup) ValidateBasics() bool {
	return strings.TrimSpace(g.Name) != ""
}

// GroupMembership links a contact to a group. Membership is the sole input
// to customer-group matching on the promotion side, so every mutation must
// be followed by a contact group invalidation call.
type GroupMembership struct {
	GroupID   string
	ContactID string
	CreatedAt time.Time
}
