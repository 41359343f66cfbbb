package models

// Message type tags understood by the negotiation channel.
const (
	TypeInitial = "initial"
	TypePing    = "ping"
	TypePropose = "propose"
	TypeAccept  = "accept"
	TypeChat    = "chat"
	TypeReset   = "reset"
)

// Outbound is a message sent to the negotiation channel. Only the fields
// relevant for the given type are populated; the wire field for quantity is
// "quality" for historical reasons.
type Outbound struct {
	Type     string   `json:"type"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quality,omitempty"`
	Body     string   `json:"body,omitempty"`

	// Test-harness reset fields.
	Role      string `json:"role,omitempty"`
	Cost      *int   `json:"cost,omitempty"`
	Market    *int   `json:"market,omitempty"`
	MaxGreedy *bool  `json:"max_greedy,omitempty"`
}

// OfferRecord is one entry of an inbound offer-set replacement. Price and
// Quantity are nil when the owner has not made an offer yet; such records
// are sentinels and must not blank out an existing offer.
type OfferRecord struct {
	OwnerIndex int      `json:"idx"`
	Price      *float64 `json:"price"`
	Quantity   *int     `json:"quality"`
	Stamp      int64    `json:"stamp,omitempty"`
}

// Inbound is a payload received from the negotiation channel. Every field is
// independently optional; a single payload may carry any combination.
type Inbound struct {
	Finished *bool         `json:"finished,omitempty"`
	Chat     []ChatMessage `json:"chat,omitempty"`
	Offers   []OfferRecord `json:"offers,omitempty"`
	Unblock  *bool         `json:"unblock,omitempty"`

	// Trail carries test-harness debug output from the counterpart driver.
	Trail string `json:"trail,omitempty"`
}

// HasFinished reports whether the payload carries the session-end signal.
// Presence is what matters, not the boolean value.
func (p *Inbound) HasFinished() bool { return p.Finished != nil }

// HasUnblock reports whether the payload carries the unblock signal.
func (p *Inbound) HasUnblock() bool { return p.Unblock != nil }
