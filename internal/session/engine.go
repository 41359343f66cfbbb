// Package session runs one negotiation from the local participant's side:
// a single event loop that owns the turn-blocking state, the offer book and
// the input fields, reacting to inbound payloads, local intents and timers.
// All mutable state is touched only on the loop goroutine.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bargainer/config"
	"bargainer/internal/decision"
	"bargainer/internal/econ"
	"bargainer/internal/field"
	"bargainer/internal/protocol"
	"bargainer/internal/turn"
	"bargainer/models"
)

const (
	// PingInterval is the keepalive cadence. The ping runs independently of
	// negotiation state and only stops at session teardown.
	PingInterval = time.Second

	// InitialDelay is the one-shot delay before the automatic "initial"
	// message when facing an automated counterpart. No cancellation path.
	InitialDelay = time.Second
)

// ErrFinished is returned by Run when the session ended normally.
var ErrFinished = errors.New("session: negotiation finished")

// ErrStopped is returned by intent methods called after Run has returned.
var ErrStopped = errors.New("session: session loop stopped")

// Controls is the enablement state of the local inputs, recomputed after
// every event that can affect it.
type Controls struct {
	ChatEnabled   bool
	OfferEnabled  bool
	AcceptVisible bool
}

// Presenter receives render updates. Implementations must not call back
// into the engine.
type Presenter interface {
	Transcript(messages []models.ChatMessage)
	Offers(local, remote *models.Offer)
	Controls(c Controls)
	Trail(trail string)
	Finished()
}

// Submitter is the page-submission collaborator invoked when the channel
// reports the negotiation finished.
type Submitter interface {
	Submit(ctx context.Context) error
}

type intent struct {
	apply func() error
	reply chan error
}

// Engine is one negotiation session. A single Engine serves all page
// variants; decision support and the test harness are capabilities, not
// separate copies.
type Engine struct {
	cfg       config.Config
	channel   protocol.Channel
	presenter Presenter
	submitter Submitter

	machine  *turn.Machine
	book     *protocol.Book
	decision *decision.Engine

	price    field.PriceField
	quantity field.QuantityField

	transcript []models.ChatMessage
	accepted   bool

	// One-shot deferred "initial" send; armed at start for bot sessions and
	// re-armed by a harness reset. Only the loop goroutine touches it.
	initialTimer <-chan time.Time

	intents chan intent

	// Closed when Run returns, so intent methods cannot block on a loop
	// that is no longer receiving.
	done chan struct{}
}

// New builds a session engine. The configuration is validated here; a
// degenerate demand range never reaches the economic model.
func New(cfg config.Config, channel protocol.Channel, presenter Presenter, submitter Submitter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		channel:   channel,
		presenter: presenter,
		submitter: submitter,
		machine:   turn.NewMachine(cfg.BotOpponent),
		book:      protocol.NewBook(cfg.ParticipantIndex),
		intents:   make(chan intent),
		done:      make(chan struct{}),
	}
	if cfg.DecisionSupport {
		eng, err := decision.NewEngine(e.params(), cfg.IsSupplier())
		if err != nil {
			return nil, err
		}
		e.decision = eng
	}
	return e, nil
}

func (e *Engine) params() econ.Params {
	return econ.Params{
		MarketPrice:    e.cfg.MarketPrice,
		ProductionCost: e.cfg.ProductionCost,
		DemandMin:      e.cfg.DemandMin,
		DemandMax:      e.cfg.DemandMax,
	}
}

// Run is the session event loop. It returns ErrFinished on normal session
// end, the context error on cancellation, or a channel error if the
// connection drops.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	ping := time.NewTicker(PingInterval)
	defer ping.Stop()

	if e.cfg.BotOpponent {
		e.initialTimer = time.After(InitialDelay)
	}

	e.pushControls()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-e.initialTimer:
			e.initialTimer = nil
			if err := e.channel.Send(protocol.Initial()); err != nil {
				slog.Warn("initial send failed", "error", err)
			}

		case <-ping.C:
			if err := e.channel.Send(protocol.Ping()); err != nil {
				slog.Warn("keepalive failed", "error", err)
			}

		case payload, ok := <-e.channel.Inbound():
			if !ok {
				return errors.New("session: negotiation channel closed")
			}
			if e.handleInbound(ctx, payload) {
				return ErrFinished
			}

		case in := <-e.intents:
			in.reply <- in.apply()
		}
	}
}

// handleInbound dispatches one payload; each field acts independently.
// It reports whether the session is finished.
func (e *Engine) handleInbound(ctx context.Context, payload models.Inbound) bool {
	if payload.Chat != nil {
		e.transcript = payload.Chat
		e.machine.TranscriptUpdate(e.transcript)
		e.presenter.Transcript(e.transcript)
	}
	if payload.Offers != nil {
		if e.book.Apply(payload.Offers) {
			e.pushOffers()
		}
	}
	if payload.HasUnblock() {
		e.machine.Unblock()
	}
	if payload.Trail != "" && e.cfg.TestHarness {
		e.presenter.Trail(payload.Trail)
	}
	e.pushControls()

	if payload.HasFinished() {
		e.finish(ctx)
		return true
	}
	return false
}

func (e *Engine) finish(ctx context.Context) {
	if e.submitter != nil {
		if err := e.submitter.Submit(ctx); err != nil {
			slog.Error("round form submission failed", "error", err)
		}
	}
	e.presenter.Finished()
}

func (e *Engine) pushControls() {
	_, acceptVisible := e.book.Remote()
	c := Controls{
		ChatEnabled:   !e.machine.ChatBlocked(),
		OfferEnabled:  field.OfferReady(&e.price, &e.quantity, e.machine.OfferBlocked()),
		AcceptVisible: acceptVisible,
	}
	if e.accepted {
		c = Controls{}
	}
	e.presenter.Controls(c)
}

func (e *Engine) pushOffers() {
	var local, remote *models.Offer
	if o, ok := e.book.Local(); ok {
		local = &o
	}
	if o, ok := e.book.Remote(); ok {
		remote = &o
	}
	e.presenter.Offers(local, remote)
}

// do runs fn on the loop goroutine and waits for its result. Once Run has
// returned, it fails with ErrStopped instead of blocking.
func (e *Engine) do(ctx context.Context, fn func() error) error {
	in := intent{apply: fn, reply: make(chan error, 1)}
	select {
	case e.intents <- in:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// The reply channel is buffered; an accepted intent always gets its
	// reply before the loop can exit.
	select {
	case err := <-in.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendChat sends a chat message and takes the optimistic local lock.
func (e *Engine) SendChat(ctx context.Context, body string) error {
	return e.do(ctx, func() error {
		if body == "" {
			return nil
		}
		if e.machine.ChatBlocked() {
			return errors.New("session: chat is blocked until the counterpart responds")
		}
		if err := e.channel.Send(protocol.Chat(body)); err != nil {
			return err
		}
		e.machine.Block()
		e.pushControls()
		return nil
	})
}

// EditPrice replays raw input through the price field's keystroke filter;
// non-conforming characters are rejected there, not cleaned up later.
func (e *Engine) EditPrice(ctx context.Context, raw string) error {
	return e.do(ctx, func() error {
		e.price.Clear()
		for _, r := range raw {
			e.price.Press(string(r))
		}
		e.pushControls()
		return nil
	})
}

// EditQuantity feeds raw input through the quantity field's normalization.
func (e *Engine) EditQuantity(ctx context.Context, raw string) error {
	return e.do(ctx, func() error {
		e.quantity.SetRaw(raw)
		e.pushControls()
		return nil
	})
}

// Propose submits the current field values as an offer, clears the fields
// and takes the optimistic local lock.
func (e *Engine) Propose(ctx context.Context) error {
	return e.do(ctx, func() error {
		if !field.OfferReady(&e.price, &e.quantity, e.machine.OfferBlocked()) {
			return errors.New("session: offer control is not enabled")
		}
		amount, err := e.price.Amount()
		if err != nil {
			return err
		}
		quantity, err := e.quantity.Int()
		if err != nil {
			return err
		}

		price, _ := amount.Float64()
		if err := e.channel.Send(protocol.Propose(price, quantity)); err != nil {
			return err
		}

		e.price.Clear()
		e.quantity.Clear()
		e.machine.Block()
		e.pushControls()
		return nil
	})
}

// Accept accepts the counterpart's current offer. Price and quantity come
// from the retained offer, never from re-parsing its rendering.
func (e *Engine) Accept(ctx context.Context) error {
	return e.do(ctx, func() error {
		remote, ok := e.book.Remote()
		if !ok {
			return errors.New("session: no counterpart offer to accept")
		}
		if err := e.channel.Send(protocol.Accept(remote.Price, remote.Quantity)); err != nil {
			return err
		}
		e.accepted = true
		e.pushControls()
		return nil
	})
}

// Evaluate computes the single-point profit breakdown for analysis inputs.
func (e *Engine) Evaluate(ctx context.Context, price float64, quantity int) (models.ProfitScenario, error) {
	var scenario models.ProfitScenario
	err := e.do(ctx, func() error {
		if e.decision == nil {
			return errors.New("session: decision support is not enabled")
		}
		var err error
		scenario, err = e.decision.EvaluateScenario(price, quantity)
		return err
	})
	return scenario, err
}

// Sweep computes the profit-vs-demand series for analysis inputs.
func (e *Engine) Sweep(ctx context.Context, price float64, quantity int) (models.ProfitSeries, error) {
	var series models.ProfitSeries
	err := e.do(ctx, func() error {
		if e.decision == nil {
			return errors.New("session: decision support is not enabled")
		}
		var err error
		series, err = e.decision.BuildSweep(price, quantity)
		return err
	})
	return series, err
}
