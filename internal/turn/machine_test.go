package turn

import (
	"testing"

	"bargainer/models"
)

func TestInitialStateFollowsOpponentKind(t *testing.T) {
	bot := NewMachine(true)
	if !bot.ChatBlocked() || !bot.OfferBlocked() {
		t.Fatal("bot session should start fully blocked")
	}

	human := NewMachine(false)
	if human.ChatBlocked() || human.OfferBlocked() {
		t.Fatal("human session should start fully unblocked")
	}
}

func TestLocalSendBlocksThenUnblockClears(t *testing.T) {
	m := NewMachine(true)
	m.Unblock()

	m.Block()
	if !m.OfferBlocked() || !m.ChatBlocked() {
		t.Fatal("local send should block both controls")
	}

	m.Unblock()
	if m.OfferBlocked() || m.ChatBlocked() {
		t.Fatal("unblock signal should clear both flags")
	}
}

func TestHumanSessionIsPassThrough(t *testing.T) {
	m := NewMachine(false)

	m.Block()
	if m.ChatBlocked() || m.OfferBlocked() {
		t.Fatal("human-human session must never block")
	}

	m.TranscriptUpdate([]models.ChatMessage{
		{Nick: "Supplier (Me)", Body: "hi"},
	})
	if m.BlockCount() != 0 {
		t.Fatal("human-human session should not count blocks")
	}
}

func TestTranscriptUpdateCountsLocalMessages(t *testing.T) {
	m := NewMachine(true)

	m.TranscriptUpdate([]models.ChatMessage{
		{Nick: "Supplier (Me)", Body: "offer?"},
		{Nick: "Buyer", Body: "thinking"},
		{Nick: "Supplier (Me)", Body: "well?"},
	})
	if m.BlockCount() != 2 {
		t.Fatalf("block count = %d, want 2", m.BlockCount())
	}
}

func TestRemoteReplyUnblocks(t *testing.T) {
	m := NewMachine(true)
	m.Block()

	m.TranscriptUpdate([]models.ChatMessage{
		{Nick: "Supplier (Me)", Body: "offer?"},
		{Nick: "Buyer", Body: "counter"},
	})
	if m.ChatBlocked() || m.OfferBlocked() {
		t.Fatal("counterpart reply should unblock the controls")
	}
}

func TestOwnMessageLastKeepsBlock(t *testing.T) {
	m := NewMachine(true)
	m.Block()

	m.TranscriptUpdate([]models.ChatMessage{
		{Nick: "Buyer", Body: "counter"},
		{Nick: "Supplier (Me)", Body: "offer?"},
	})
	if !m.ChatBlocked() {
		t.Fatal("own message last should keep the chat blocked")
	}
}

func TestEmptyTranscriptIsIgnored(t *testing.T) {
	m := NewMachine(true)
	m.Block()
	m.TranscriptUpdate(nil)
	if !m.ChatBlocked() {
		t.Fatal("empty transcript must not change blocking state")
	}
}
