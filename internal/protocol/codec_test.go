package protocol

import (
	"encoding/json"
	"testing"

	"bargainer/models"
)

func TestOutboundWireShapes(t *testing.T) {
	cases := []struct {
		msg  models.Outbound
		want string
	}{
		{Initial(), `{"type":"initial"}`},
		{Ping(), `{"type":"ping"}`},
		{Propose(7, 50), `{"type":"propose","price":7,"quality":50}`},
		{Accept(10, 20), `{"type":"accept","price":10,"quality":20}`},
		{Chat("deal?"), `{"type":"chat","body":"deal?"}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.msg)
		if err != nil {
			t.Fatalf("marshal %s: %v", tc.msg.Type, err)
		}
		if string(data) != tc.want {
			t.Fatalf("wire shape %s, want %s", data, tc.want)
		}
	}
}

func TestResetWireShape(t *testing.T) {
	data, err := json.Marshal(Reset("Supplier", 4, 11, true))
	if err != nil {
		t.Fatalf("marshal reset: %v", err)
	}
	want := `{"type":"reset","role":"Supplier","cost":4,"market":11,"max_greedy":true}`
	if string(data) != want {
		t.Fatalf("wire shape %s, want %s", data, want)
	}
}

func TestDecodePayloadOptionalFields(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"chat":[{"nick":"Buyer","body":"hi"}],"unblock":true}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}

	if payload.HasFinished() {
		t.Fatal("finished should be absent")
	}
	if !payload.HasUnblock() {
		t.Fatal("unblock should be present")
	}
	if len(payload.Chat) != 1 || payload.Chat[0].Nick != "Buyer" {
		t.Fatalf("unexpected chat %+v", payload.Chat)
	}
	if payload.Offers != nil {
		t.Fatal("offers should be absent")
	}
}

func TestDecodePayloadNullOfferFields(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"offers":[{"idx":1,"price":10,"quality":20},{"idx":2,"price":null,"quality":null}]}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}

	if len(payload.Offers) != 2 {
		t.Fatalf("expected 2 offer records, got %d", len(payload.Offers))
	}
	if payload.Offers[0].Price == nil || *payload.Offers[0].Price != 10 {
		t.Fatalf("unexpected first record %+v", payload.Offers[0])
	}
	if payload.Offers[1].Price != nil || payload.Offers[1].Quantity != nil {
		t.Fatalf("expected nil sentinel record, got %+v", payload.Offers[1])
	}
}

func TestDecodePayloadToleratesMalformedField(t *testing.T) {
	// A bad chat field is dropped; the rest of the payload stays usable.
	payload, err := DecodePayload([]byte(`{"chat":"oops","finished":true}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.Chat != nil {
		t.Fatalf("malformed chat should be dropped, got %+v", payload.Chat)
	}
	if !payload.HasFinished() {
		t.Fatal("finished should survive the malformed sibling field")
	}
}

func TestDecodePayloadRejectsNonObject(t *testing.T) {
	if _, err := DecodePayload([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}

func TestDecodePayloadIgnoresUnknownFields(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"surprise":42,"unblock":true}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if !payload.HasUnblock() {
		t.Fatal("unblock should be present despite unknown sibling")
	}
}
