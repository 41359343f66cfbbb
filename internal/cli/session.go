package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"bargainer/config"
	"bargainer/internal/display"
	"bargainer/internal/protocol"
	"bargainer/internal/session"
	"bargainer/internal/turn"
	"bargainer/models"
)

const localMarker = turn.LocalMarker

// terminalPresenter renders session updates to the terminal. It is called
// from the session goroutine, so every print and snapshot goes through the
// mutex.
type terminalPresenter struct {
	mu       sync.Mutex
	term     *display.Terminal
	seen     int
	controls session.Controls
	local    *models.Offer
	remote   *models.Offer
}

func newTerminalPresenter() *terminalPresenter {
	return &terminalPresenter{term: display.NewTerminal(localMarker)}
}

func (p *terminalPresenter) Transcript(messages []models.ChatMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// The channel replaces the whole transcript; only print what is new.
	if len(messages) < p.seen {
		p.seen = 0
	}
	for _, msg := range messages[p.seen:] {
		fmt.Println(p.term.Transcript([]models.ChatMessage{msg}))
	}
	p.seen = len(messages)
}

func (p *terminalPresenter) Offers(local, remote *models.Offer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.local = local
	p.remote = remote
	fmt.Println(p.term.Offers(local, remote))
}

func (p *terminalPresenter) Controls(c session.Controls) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls = c
}

func (p *terminalPresenter) Trail(trail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Println(trailStyle.Render("trail: " + trail))
}

func (p *terminalPresenter) Finished() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Println(noticeStyle.Render("The negotiation has concluded."))
}

func (p *terminalPresenter) currentControls() session.Controls {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls
}

func (p *terminalPresenter) printState(transcriptHint string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Println(p.term.Offers(p.local, p.remote))
	if transcriptHint != "" {
		fmt.Println(mutedNote(transcriptHint))
	}
}

// runNegotiation connects to the channel and drives the interactive loop
// until the negotiation finishes or the participant quits.
func runNegotiation(ctx context.Context, cfg *config.Config) error {
	displayWelcomeBanner(cfg)

	client, err := protocol.Dial(ctx, cfg.ChannelURL)
	if err != nil {
		return err
	}
	defer client.Close()

	presenter := newTerminalPresenter()
	eng, err := session.New(*cfg, client, presenter, session.NewFormSubmitter(cfg.SubmitURL))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if activeManager != nil && cfg.TestHarness {
		// Session parameters are fixed at session start; file edits are
		// picked up when the next session begins.
		err := activeManager.Watch(ctx, func(config.Config) {
			fmt.Println(mutedNote("Config file changed; new parameters apply to the next session."))
		})
		if err != nil {
			return err
		}
	}

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	abandon := func() {
		cancel()
		<-runDone
	}

	sessionOver := func() (error, bool) {
		select {
		case err := <-runDone:
			if errors.Is(err, session.ErrFinished) {
				return nil, true
			}
			return err, true
		default:
			return nil, false
		}
	}

	for {
		if err, over := sessionOver(); over {
			return err
		}

		action, err := promptForAction(cfg, presenter.currentControls())
		if err != nil {
			// Ctrl-C in a prompt ends the session cleanly.
			abandon()
			return nil
		}

		// The session may have finished while the prompt was open.
		if err, over := sessionOver(); over {
			return err
		}

		if err := dispatchAction(ctx, cfg, eng, presenter, action); err != nil {
			if errors.Is(err, errQuit) {
				abandon()
				return nil
			}
			if errors.Is(err, session.ErrStopped) {
				continue
			}
			fmt.Println(errorNote(err))
		}
	}
}

var errQuit = errors.New("quit")

func dispatchAction(ctx context.Context, cfg *config.Config, eng *session.Engine, presenter *terminalPresenter, action string) error {
	switch action {
	case actionChat:
		body, err := promptForChatMessage()
		if err != nil {
			return err
		}
		return eng.SendChat(ctx, body)

	case actionPropose:
		price, quantity, err := promptForDeal()
		if err != nil {
			return err
		}
		if err := eng.EditPrice(ctx, price); err != nil {
			return err
		}
		if err := eng.EditQuantity(ctx, quantity); err != nil {
			return err
		}
		return eng.Propose(ctx)

	case actionAccept:
		return eng.Accept(ctx)

	case actionShow:
		presenter.printState("Chat history appears above as it arrives.")
		return nil

	case actionAnalyze:
		price, quantity, err := promptForDeal()
		if err != nil {
			return err
		}
		return runAnalysis(ctx, eng, presenter, price, quantity, false)

	case actionSweep:
		price, quantity, err := promptForDeal()
		if err != nil {
			return err
		}
		return runAnalysis(ctx, eng, presenter, price, quantity, true)

	case actionReset:
		params, err := promptForResetParams(cfg)
		if err != nil {
			return err
		}
		if err := eng.Reset(ctx, params); err != nil {
			return err
		}
		// Keep the menu and engine parameters in step after the role flip.
		cfg.Role = params.Role
		cfg.ProductionCost = float64(params.Cost)
		cfg.MarketPrice = float64(params.Market)
		if activeManager != nil {
			if err := activeManager.Update(*cfg); err != nil {
				fmt.Println(errorNote(fmt.Errorf("persist reset parameters: %w", err)))
			}
		}
		fmt.Println(noticeStyle.Render("Round reset. A fresh negotiation starts now."))
		return nil

	case actionQuit:
		return errQuit
	}
	return fmt.Errorf("unknown action %q", action)
}

func runAnalysis(ctx context.Context, eng *session.Engine, presenter *terminalPresenter, priceStr, quantityStr string, sweep bool) error {
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", priceStr, err)
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", quantityStr, err)
	}

	if sweep {
		series, err := eng.Sweep(ctx, price, quantity)
		if err != nil {
			return err
		}
		fmt.Println(presenter.term.Sweep(series, 5))
		return nil
	}

	scenario, err := eng.Evaluate(ctx, price, quantity)
	if err != nil {
		return err
	}
	fmt.Println(presenter.term.Scenario(scenario))
	return nil
}
