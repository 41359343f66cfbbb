// Package protocol speaks the negotiation channel's wire contract: it
// serializes local intents into outbound messages and decodes inbound
// payloads into an explicit optional-field structure, once, at the boundary.
package protocol

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"bargainer/models"
)

// ParseError reports a malformed inbound payload. The session tolerates it
// by ignoring the affected variant rather than failing the negotiation.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("protocol: malformed payload: %v", e.Err)
	}
	return fmt.Sprintf("protocol: malformed %q field: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Outbound message constructors.

func Initial() models.Outbound {
	return models.Outbound{Type: models.TypeInitial}
}

func Ping() models.Outbound {
	return models.Outbound{Type: models.TypePing}
}

func Propose(price float64, quantity int) models.Outbound {
	return models.Outbound{Type: models.TypePropose, Price: &price, Quantity: &quantity}
}

func Accept(price float64, quantity int) models.Outbound {
	return models.Outbound{Type: models.TypeAccept, Price: &price, Quantity: &quantity}
}

func Chat(body string) models.Outbound {
	return models.Outbound{Type: models.TypeChat, Body: body}
}

// Reset is the test-harness control message that reseeds the negotiation
// with a fresh role and randomized market parameters.
func Reset(role string, cost, market int, maxGreedy bool) models.Outbound {
	return models.Outbound{
		Type:      models.TypeReset,
		Role:      role,
		Cost:      &cost,
		Market:    &market,
		MaxGreedy: &maxGreedy,
	}
}

// DecodePayload parses one inbound payload. Every field is independently
// optional; a field that fails to decode is dropped with a warning while the
// rest of the payload stays usable. Only a payload that is not a JSON object
// at all is an error.
func DecodePayload(data []byte) (models.Inbound, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Inbound{}, &ParseError{Err: err}
	}

	var payload models.Inbound
	decodeField(raw, "finished", &payload.Finished)
	decodeField(raw, "chat", &payload.Chat)
	decodeField(raw, "offers", &payload.Offers)
	decodeField(raw, "unblock", &payload.Unblock)
	decodeField(raw, "trail", &payload.Trail)
	return payload, nil
}

func decodeField[T any](raw map[string]json.RawMessage, name string, dst *T) {
	msg, ok := raw[name]
	if !ok {
		return
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		slog.Warn("dropping malformed payload field",
			"error", &ParseError{Field: name, Err: err})
	}
}
