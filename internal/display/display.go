// Package display renders the negotiation for its two front ends: the HTML
// fragments the web page embeds and a lipgloss-styled terminal view for the
// CLI client. It consumes engine values only and feeds nothing back.
package display

import (
	"strconv"
	"strings"

	"bargainer/models"
)

// htmlEntities is the escaping contract for transcript insertion: these
// characters must be escaped before any user-authored text reaches markup.
var htmlEntities = map[rune]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
	'/':  "&#x2F;",
	'`':  "&#x60;",
	'=':  "&#x3D;",
}

// EscapeHTML escapes every character of the transcript escaping contract.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ent, ok := htmlEntities[r]; ok {
			b.WriteString(ent)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPrice renders a price without trailing zeros ("10", "7.5", "12.55").
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// RenderOfferHTML renders one offer the way the proposal panels display it.
func RenderOfferHTML(offer models.Offer) string {
	return "€" + FormatPrice(offer.Price) + "<br>" + strconv.Itoa(offer.Quantity)
}

// RenderTranscriptHTML renders the full transcript as a replacement
// fragment. Bodies and nicknames are escaped; newlines become line breaks
// after escaping so the break tags themselves survive.
func RenderTranscriptHTML(messages []models.ChatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		body := strings.ReplaceAll(EscapeHTML(msg.Body), "\n", "<br>")
		b.WriteString("<div class='otree-chat__msg'>")
		b.WriteString("<span class='otree-chat__nickname'>")
		b.WriteString(EscapeHTML(msg.Nick))
		b.WriteString("</span>")
		b.WriteString("<span class='otree-chat__body'>")
		b.WriteString(body)
		b.WriteString("</span>")
		b.WriteString("</div>")
	}
	b.WriteString("<div class='otree-chat__msg'>&nbsp;</div>")
	return b.String()
}
