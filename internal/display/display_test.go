package display

import (
	"strings"
	"testing"

	"bargainer/models"
)

func TestEscapeHTMLContract(t *testing.T) {
	got := EscapeHTML("&<>\"'/`=")
	want := "&amp;&lt;&gt;&quot;&#39;&#x2F;&#x60;&#x3D;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestEscapeHTMLLeavesPlainTextAlone(t *testing.T) {
	s := "price 7 for 50 units, ok?"
	if got := EscapeHTML(s); got != s {
		t.Fatalf("EscapeHTML changed plain text: %q", got)
	}
}

func TestRenderOfferHTML(t *testing.T) {
	got := RenderOfferHTML(models.Offer{OwnerIndex: 1, Price: 10, Quantity: 20})
	if got != "€10<br>20" {
		t.Fatalf("RenderOfferHTML = %q, want \"€10<br>20\"", got)
	}

	got = RenderOfferHTML(models.Offer{OwnerIndex: 1, Price: 12.55, Quantity: 3})
	if got != "€12.55<br>3" {
		t.Fatalf("RenderOfferHTML = %q, want \"€12.55<br>3\"", got)
	}
}

func TestRenderTranscriptHTMLEscapesAndBreaks(t *testing.T) {
	got := RenderTranscriptHTML([]models.ChatMessage{
		{Nick: "Buyer <b>", Body: "line1\nline2"},
	})

	if !strings.Contains(got, "Buyer &lt;b&gt;") {
		t.Fatalf("nickname not escaped: %q", got)
	}
	if !strings.Contains(got, "line1<br>line2") {
		t.Fatalf("newline not converted after escaping: %q", got)
	}
	if !strings.HasSuffix(got, "<div class='otree-chat__msg'>&nbsp;</div>") {
		t.Fatalf("missing trailing spacer: %q", got)
	}
}

func TestRenderTranscriptHTMLEmpty(t *testing.T) {
	got := RenderTranscriptHTML(nil)
	if got != "<div class='otree-chat__msg'>&nbsp;</div>" {
		t.Fatalf("empty transcript = %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		10:    "10",
		7.5:   "7.5",
		12.55: "12.55",
	}
	for price, want := range cases {
		if got := FormatPrice(price); got != want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", price, got, want)
		}
	}
}
