package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"bargainer/config"
)

// UI styles
var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	trailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// displayWelcomeBanner shows the session header with the market parameters
// the participant negotiates under.
func displayWelcomeBanner(cfg *config.Config) {
	fmt.Println(bannerStyle.Render("Bargainer - bilateral price negotiation"))
	fmt.Printf("You are the %s facing a %s.\n", cfg.Role, counterpartKind(cfg))
	fmt.Printf("Market price €%v, production cost €%v, demand between %d and %d.\n",
		cfg.MarketPrice, cfg.ProductionCost, cfg.DemandMin, cfg.DemandMax)
	if cfg.BotOpponent {
		fmt.Println(mutedStyle.Render("Turn-taking applies: wait for a response before sending again."))
	}
	fmt.Println()
}

func errorNote(err error) string {
	return warnStyle.Render(fmt.Sprintf("✗ %v", err))
}

func mutedNote(s string) string {
	return mutedStyle.Render(s)
}
