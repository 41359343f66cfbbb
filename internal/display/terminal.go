package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bargainer/models"
)

var (
	nickStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	localNickStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	offerPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// Terminal renders the negotiation for the CLI client.
type Terminal struct {
	localMarker string
}

func NewTerminal(localMarker string) *Terminal {
	return &Terminal{localMarker: localMarker}
}

// Transcript renders the full message sequence, newest last.
func (t *Terminal) Transcript(messages []models.ChatMessage) string {
	if len(messages) == 0 {
		return mutedStyle.Render("(no messages yet)")
	}
	var b strings.Builder
	for _, msg := range messages {
		style := nickStyle
		if strings.Contains(msg.Nick, t.localMarker) {
			style = localNickStyle
		}
		b.WriteString(style.Render(msg.Nick))
		b.WriteString("  ")
		b.WriteString(msg.Body)
		b.WriteString("\n")
	}
	return b.String()
}

// Offers renders both proposal panels side by side.
func (t *Terminal) Offers(local, remote *models.Offer) string {
	render := func(title string, offer *models.Offer) string {
		body := "(none)"
		if offer != nil {
			body = fmt.Sprintf("€%s for %d units", FormatPrice(offer.Price), offer.Quantity)
		}
		return offerPanelStyle.Render(title + "\n" + body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("My proposal", local),
		render("Their proposal", remote))
}

func profitCell(v float64) string {
	s := fmt.Sprintf("€%.2f", v)
	if v < 0 {
		return lossStyle.Render(s)
	}
	return profitStyle.Render(s)
}

// Scenario renders the single-point profit breakdown.
func (t *Terminal) Scenario(s models.ProfitScenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis for price €%s, quantity %d\n", FormatPrice(s.Price), s.Quantity)
	fmt.Fprintf(&b, "  expected demand: %.2f\n", s.ExpectedDemand)
	fmt.Fprintf(&b, "  expected sales:  %.2f\n", s.ExpectedSales)
	fmt.Fprintf(&b, "  %-22s %s\n", s.MyRole, profitCell(s.MyProfit))
	fmt.Fprintf(&b, "  %-22s %s\n", s.OtherRole, profitCell(s.OtherProfit))
	if s.MyProfit < 0 || s.OtherProfit < 0 {
		b.WriteString(lossStyle.Render("  warning: this deal loses money for at least one party"))
		b.WriteString("\n")
	}
	return b.String()
}

// Sweep renders the profit-vs-demand curve as a table, with the
// expectation lines shown once above it.
func (t *Terminal) Sweep(series models.ProfitSeries, step int) string {
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Sweep for price €%s, quantity %d\n", FormatPrice(series.Price), series.Quantity)
	fmt.Fprintf(&b, "expected demand %.2f: supplier %s, buyer %s\n\n",
		series.ExpectedDemand,
		profitCell(series.ExpectedSupplierProfit),
		profitCell(series.ExpectedBuyerProfit))
	fmt.Fprintf(&b, "%8s %14s %14s\n", "demand", "supplier", "buyer")
	for i, pt := range series.Points {
		if i%step != 0 && i != len(series.Points)-1 {
			continue
		}
		fmt.Fprintf(&b, "%8d %14s %14s\n",
			pt.DemandLevel, profitCell(pt.SupplierProfit), profitCell(pt.BuyerProfit))
	}
	return b.String()
}
