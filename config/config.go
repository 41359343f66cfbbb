package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Role names as they appear on the wire and in transcripts.
const (
	RoleSupplier = "Supplier"
	RoleBuyer    = "Buyer"
)

// ErrDegenerateDemand marks a configuration where the demand bounds collapse.
// The economic model divides by (DemandMax - DemandMin), so this must be
// refused at session start, never tolerated.
var ErrDegenerateDemand = errors.New("config: demand_max must be greater than demand_min")

// Config holds the static session configuration. Market parameters are set
// once at session start and stay immutable for the session's lifetime.
type Config struct {
	// Market parameters.
	MarketPrice    float64 `json:"market_price"`
	ProductionCost float64 `json:"production_cost"`
	DemandMin      int     `json:"demand_min"`
	DemandMax      int     `json:"demand_max"`
	Role           string  `json:"role"`
	BotOpponent    bool    `json:"bot_opponent"`

	// Channel / page wiring.
	ChannelURL       string `json:"channel_url"`
	SubmitURL        string `json:"submit_url"`
	ParticipantIndex int    `json:"participant_index"`
	Nick             string `json:"nick"`

	// Engine capabilities. One engine serves all page variants.
	DecisionSupport bool `json:"decision_support"`
	TestHarness     bool `json:"test_harness"`

	// Test-harness randomized-reset ranges.
	ProductionCostLow  int `json:"production_cost_low"`
	ProductionCostHigh int `json:"production_cost_high"`
	MarketPriceLow     int `json:"market_price_low"`
	MarketPriceHigh    int `json:"market_price_high"`

	Debug bool `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		MarketPrice:    11,
		ProductionCost: 4,
		DemandMin:      0,
		DemandMax:      100,
		Role:           RoleSupplier,
		BotOpponent:    true,

		ChannelURL:       "ws://localhost:8000/live",
		SubmitURL:        "",
		ParticipantIndex: 1,
		Nick:             "Supplier (Me)",

		DecisionSupport: true,
		TestHarness:     false,

		ProductionCostLow:  3,
		ProductionCostHigh: 5,
		MarketPriceLow:     9,
		MarketPriceHigh:    12,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("BARGAINER_CHANNEL_URL"); val != "" {
		c.ChannelURL = val
	}
	if val := os.Getenv("BARGAINER_SUBMIT_URL"); val != "" {
		c.SubmitURL = val
	}
	if val := os.Getenv("BARGAINER_NICK"); val != "" {
		c.Nick = val
	}
	if val := os.Getenv("BARGAINER_ROLE"); val != "" {
		c.Role = val
	}

	if val := os.Getenv("BARGAINER_MARKET_PRICE"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.MarketPrice = v
		}
	}
	if val := os.Getenv("BARGAINER_PRODUCTION_COST"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.ProductionCost = v
		}
	}
	if val := os.Getenv("BARGAINER_DEMAND_MIN"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.DemandMin = v
		}
	}
	if val := os.Getenv("BARGAINER_DEMAND_MAX"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.DemandMax = v
		}
	}
	if val := os.Getenv("BARGAINER_PARTICIPANT_INDEX"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.ParticipantIndex = v
		}
	}

	if val := os.Getenv("BARGAINER_BOT_OPPONENT"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.BotOpponent = v
		}
	}
	if val := os.Getenv("BARGAINER_DECISION_SUPPORT"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.DecisionSupport = v
		}
	}
	if val := os.Getenv("BARGAINER_TEST_HARNESS"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.TestHarness = v
		}
	}
	if val := os.Getenv("BARGAINER_DEBUG"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.Debug = v
		}
	}
}

// IsSupplier reports whether the local participant plays the supplier role.
func (c *Config) IsSupplier() bool {
	return c.Role == RoleSupplier
}

// OppositeRole returns the counterpart's role name.
func (c *Config) OppositeRole() string {
	if c.IsSupplier() {
		return RoleBuyer
	}
	return RoleSupplier
}

// Validate refuses configurations the engine cannot run with. A degenerate
// demand range is fatal here so it can never reach the economic model.
func (c *Config) Validate() error {
	if c.DemandMax <= c.DemandMin {
		return ErrDegenerateDemand
	}
	if c.DemandMin < 0 {
		return fmt.Errorf("config: demand_min must be non-negative, got %d", c.DemandMin)
	}
	if c.MarketPrice <= 0 {
		return fmt.Errorf("config: market_price must be positive, got %v", c.MarketPrice)
	}
	if c.ProductionCost < 0 {
		return fmt.Errorf("config: production_cost must be non-negative, got %v", c.ProductionCost)
	}
	if c.Role != RoleSupplier && c.Role != RoleBuyer {
		return fmt.Errorf("config: unknown role %q", c.Role)
	}
	if c.ParticipantIndex < 1 {
		return fmt.Errorf("config: participant_index must be >= 1, got %d", c.ParticipantIndex)
	}
	if c.TestHarness {
		if c.ProductionCostLow > c.ProductionCostHigh {
			return fmt.Errorf("config: production cost range [%d, %d] is empty",
				c.ProductionCostLow, c.ProductionCostHigh)
		}
		if c.MarketPriceLow > c.MarketPriceHigh {
			return fmt.Errorf("config: market price range [%d, %d] is empty",
				c.MarketPriceLow, c.MarketPriceHigh)
		}
	}
	return nil
}
