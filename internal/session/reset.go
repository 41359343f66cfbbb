package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bargainer/config"
	"bargainer/internal/decision"
	"bargainer/internal/protocol"
	"bargainer/internal/turn"
)

// ResetParams reseed a test-harness negotiation: the human picks a role and
// new market parameters from the configured ranges.
type ResetParams struct {
	Role      string
	Cost      int
	Market    int
	MaxGreedy bool
}

func (e *Engine) validateReset(p ResetParams) error {
	if p.Role != config.RoleSupplier && p.Role != config.RoleBuyer {
		return fmt.Errorf("session: unknown reset role %q", p.Role)
	}
	if p.Cost < e.cfg.ProductionCostLow || p.Cost > e.cfg.ProductionCostHigh {
		return fmt.Errorf("session: reset cost %d outside [%d, %d]",
			p.Cost, e.cfg.ProductionCostLow, e.cfg.ProductionCostHigh)
	}
	if p.Market < e.cfg.MarketPriceLow || p.Market > e.cfg.MarketPriceHigh {
		return fmt.Errorf("session: reset market price %d outside [%d, %d]",
			p.Market, e.cfg.MarketPriceLow, e.cfg.MarketPriceHigh)
	}
	return nil
}

// Reset restarts the harness negotiation with fresh parameters: it clears
// the local offer and transcript state, re-blocks the controls and re-arms
// the deferred initial send, mirroring a fresh page load.
func (e *Engine) Reset(ctx context.Context, p ResetParams) error {
	return e.do(ctx, func() error {
		if !e.cfg.TestHarness {
			return errors.New("session: reset is a test-harness capability")
		}
		if err := e.validateReset(p); err != nil {
			return err
		}

		if err := e.channel.Send(protocol.Reset(p.Role, p.Cost, p.Market, p.MaxGreedy)); err != nil {
			return err
		}

		e.cfg.Role = p.Role
		e.cfg.ProductionCost = float64(p.Cost)
		e.cfg.MarketPrice = float64(p.Market)
		if e.cfg.DecisionSupport {
			eng, err := decision.NewEngine(e.params(), e.cfg.IsSupplier())
			if err != nil {
				return err
			}
			e.decision = eng
		}

		e.transcript = nil
		e.book.Clear()
		e.accepted = false
		e.price.Clear()
		e.quantity.Clear()
		e.machine = turn.NewMachine(true)

		e.presenter.Transcript(nil)
		e.presenter.Offers(nil, nil)
		e.pushControls()

		e.initialTimer = time.After(InitialDelay)
		return nil
	})
}
