// Package turn tracks whether the local participant may currently send a
// chat message or an offer. Blocking is a UX pacing device for sessions
// against an automated counterpart: a local send locks the controls until
// the counterpart has visibly taken its turn. Human-human sessions never
// block; the machine is a deliberate pass-through there.
package turn

import (
	"strings"

	"bargainer/models"
)

// LocalMarker tags transcript nicknames authored by the local participant.
const LocalMarker = "(Me)"

// Machine holds the two orthogonal blocking flags. Chat and offer blocking
// are independent axes, not a single enum. All methods must be called from
// the session's event goroutine; the machine does no locking of its own.
type Machine struct {
	botOpponent  bool
	chatBlocked  bool
	offerBlocked bool
	blockCount   int
}

// NewMachine initializes the flags from the opponent kind: fully blocked
// against a bot, fully unblocked against a human.
func NewMachine(botOpponent bool) *Machine {
	return &Machine{
		botOpponent:  botOpponent,
		chatBlocked:  botOpponent,
		offerBlocked: botOpponent,
	}
}

func (m *Machine) ChatBlocked() bool  { return m.chatBlocked }
func (m *Machine) OfferBlocked() bool { return m.offerBlocked }

// BlockCount is the number of transcript messages authored locally, as of
// the last transcript update.
func (m *Machine) BlockCount() int { return m.blockCount }

// Block is the optimistic local lock: called on every local chat or offer
// send, before the round-trip completes, so the same action cannot be
// submitted twice.
func (m *Machine) Block() {
	if !m.botOpponent {
		return
	}
	m.chatBlocked = true
	m.offerBlocked = true
}

// Unblock clears both flags. Whether the offer control actually re-enables
// still depends on both input fields being populated; that check lives with
// the field state, not here.
func (m *Machine) Unblock() {
	if !m.botOpponent {
		return
	}
	m.chatBlocked = false
	m.offerBlocked = false
}

// TranscriptUpdate recounts locally-authored messages and, when the most
// recent message came from the counterpart, clears the chat block. This is
// how a bot reply re-enables the chat input when no explicit unblock signal
// arrives.
func (m *Machine) TranscriptUpdate(messages []models.ChatMessage) {
	if !m.botOpponent || len(messages) == 0 {
		return
	}

	count := 0
	for _, msg := range messages {
		if strings.Contains(msg.Nick, LocalMarker) {
			count++
		}
	}
	m.blockCount = count

	last := messages[len(messages)-1]
	if !strings.Contains(last.Nick, LocalMarker) {
		m.Unblock()
	}
}
