package models

import "time"

// Offer is a proposed (price, quantity) pair attributed to one participant.
// An offer is immutable once created; a later offer from the same owner
// supersedes it, the struct itself is never mutated.
type Offer struct {
	OwnerIndex int     `json:"idx"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quality"`
	Stamp      int64   `json:"stamp"`
}

// NewOffer creates an offer stamped with the current time.
func NewOffer(ownerIndex int, price float64, quantity int) Offer {
	return Offer{
		OwnerIndex: ownerIndex,
		Price:      price,
		Quantity:   quantity,
		Stamp:      time.Now().Unix(),
	}
}

// ChatMessage is one entry of the negotiation transcript.
type ChatMessage struct {
	Nick string `json:"nick"`
	Body string `json:"body"`
}
