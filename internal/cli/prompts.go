package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"bargainer/config"
	"bargainer/internal/session"
)

// Action menu entries for the interactive loop.
const (
	actionChat    = "Send a chat message"
	actionPropose = "Make a proposal"
	actionAccept  = "Accept their proposal"
	actionShow    = "Show negotiation state"
	actionAnalyze = "Analyze a deal"
	actionSweep   = "Profit sweep for a deal"
	actionReset   = "Reset the round"
	actionQuit    = "Quit"
)

// promptForAction builds the menu from what the session currently allows.
// Blocked actions stay visible so the participant sees what exists; the
// engine rejects them with an explanation if picked anyway.
func promptForAction(cfg *config.Config, controls session.Controls) (string, error) {
	options := []string{actionChat, actionPropose}
	if controls.AcceptVisible {
		options = append(options, actionAccept)
	}
	options = append(options, actionShow)
	if cfg.DecisionSupport {
		options = append(options, actionAnalyze, actionSweep)
	}
	if cfg.TestHarness {
		options = append(options, actionReset)
	}
	options = append(options, actionQuit)

	var action string
	prompt := &survey.Select{
		Message: "What do you want to do?",
		Options: options,
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return "", err
	}
	return action, nil
}

// promptForChatMessage prompts for one chat line.
func promptForChatMessage() (string, error) {
	var body string
	prompt := &survey.Input{
		Message: "Message:",
		Help:    "Sent to the counterpart as-is. Empty input is discarded.",
	}
	if err := survey.AskOne(prompt, &body); err != nil {
		return "", err
	}
	return body, nil
}

// promptForDeal prompts for the price and quantity of a proposal or
// analysis. The raw strings are returned unparsed; the session's input
// fields apply the same keystroke filtering the page inputs do.
func promptForDeal() (price, quantity string, err error) {
	pricePrompt := &survey.Input{
		Message: "Price per unit (€):",
		Help:    "Digits and at most one dot, e.g. 7 or 12.55",
	}
	err = survey.AskOne(pricePrompt, &price, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("price cannot be empty")
		}
		if _, err := strconv.ParseFloat(str, 64); err != nil {
			return fmt.Errorf("price must be a number")
		}
		return nil
	}))
	if err != nil {
		return "", "", err
	}

	quantityPrompt := &survey.Input{
		Message: "Quantity (units):",
		Help:    "A whole number; values above 100 are capped",
	}
	err = survey.AskOne(quantityPrompt, &quantity, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("quantity cannot be empty")
		}
		if _, err := strconv.Atoi(str); err != nil {
			return fmt.Errorf("quantity must be a whole number")
		}
		return nil
	}))
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(price), strings.TrimSpace(quantity), nil
}

// promptForResetParams collects the fresh round parameters from the
// configured ranges.
func promptForResetParams(cfg *config.Config) (session.ResetParams, error) {
	var params session.ResetParams

	rolePrompt := &survey.Select{
		Message: "Play as:",
		Options: []string{config.RoleSupplier, config.RoleBuyer},
		Default: cfg.Role,
	}
	if err := survey.AskOne(rolePrompt, &params.Role); err != nil {
		return params, err
	}

	var costStr string
	costPrompt := &survey.Select{
		Message: "Production cost:",
		Options: intRange(cfg.ProductionCostLow, cfg.ProductionCostHigh),
	}
	if err := survey.AskOne(costPrompt, &costStr); err != nil {
		return params, err
	}
	params.Cost, _ = strconv.Atoi(costStr)

	var marketStr string
	marketPrompt := &survey.Select{
		Message: "Market price:",
		Options: intRange(cfg.MarketPriceLow, cfg.MarketPriceHigh),
	}
	if err := survey.AskOne(marketPrompt, &marketStr); err != nil {
		return params, err
	}
	params.Market, _ = strconv.Atoi(marketStr)

	greedyPrompt := &survey.Confirm{
		Message: "Maximally greedy counterpart?",
		Default: false,
	}
	if err := survey.AskOne(greedyPrompt, &params.MaxGreedy); err != nil {
		return params, err
	}

	return params, nil
}

func intRange(low, high int) []string {
	options := make([]string, 0, high-low+1)
	for v := low; v <= high; v++ {
		options = append(options, strconv.Itoa(v))
	}
	return options
}
