// Package session owns the live price poll loop. At most one session is
// active at a time; starting a new one cancels the previous session's
// ticker before any new state is created.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/recorder"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/stockai"
	"github.com/Aaditya-Gupta-2004/Stock-price-prediction/internal/window"
)

// DefaultPollInterval is the fixed period of the realtime poll.
const DefaultPollInterval = 5 * time.Second

// State of the current live session.
type State int

const (
	Idle State = iota
	Starting
	Polling
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Polling:
		return "polling"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// QuoteService is the slice of the backend client the controller uses.
type QuoteService interface {
	Predict(ctx context.Context, symbol string) (*stockai.PredictionSet, error)
	Realtime(ctx context.Context, symbol string) (*stockai.Quote, error)
}

// Update is handed to the presentation layer after each buffer mutation.
type Update struct {
	SessionID string
	Symbol    string
	Quote     stockai.Quote
	Change    float64
	Direction stockai.Direction
	Points    []window.PricePoint
}

// RedrawFunc renders an update. It is called from the poll goroutine.
type RedrawFunc func(Update)

// liveSession bundles the state backing one live price view. A new
// instance is always constructed per symbol; Stopped is terminal.
type liveSession struct {
	id     string
	symbol string
	window *window.Window
	state  State
	stop   chan struct{}
	done   chan struct{}
}

// Controller drives the poll loop for the single active session.
type Controller struct {
	svc      QuoteService
	rec      recorder.Recorder
	redraw   RedrawFunc
	interval time.Duration
	capacity int

	// startMu serializes session lifecycle changes so two concurrent
	// Start calls cannot both arm a poller.
	startMu sync.Mutex

	mu   sync.Mutex
	cur  *liveSession
	pred *stockai.PredictionSet
}

// ControllerOption is a configuration option for the controller.
type ControllerOption func(*Controller)

// WithInterval sets the poll period.
func WithInterval(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithWindowCapacity sets how many points the live window keeps.
func WithWindowCapacity(n int) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithRecorder sets the tick recorder.
func WithRecorder(rec recorder.Recorder) ControllerOption {
	return func(c *Controller) {
		if rec != nil {
			c.rec = rec
		}
	}
}

// WithRedraw sets the presentation hook.
func WithRedraw(fn RedrawFunc) ControllerOption {
	return func(c *Controller) {
		c.redraw = fn
	}
}

func NewController(svc QuoteService, options ...ControllerOption) *Controller {
	c := &Controller{
		svc:      svc,
		rec:      recorder.NewNoopRecorder(),
		interval: DefaultPollInterval,
		capacity: window.DefaultCapacity,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Start begins a live session for symbol. It fetches the prediction set
// and the initial quote first; any failure there aborts the start and
// leaves a previously running session untouched. On success the previous
// session is cancelled synchronously, then the new session's window is
// seeded and its ticker armed.
func (c *Controller) Start(ctx context.Context, symbol string) error {
	sym, err := stockai.NormalizeSymbol(symbol)
	if err != nil {
		return err
	}

	c.startMu.Lock()
	defer c.startMu.Unlock()

	var (
		pred *stockai.PredictionSet
		q    *stockai.Quote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.svc.Predict(gctx, sym)
		pred = p
		return err
	})
	g.Go(func() error {
		quote, err := c.svc.Realtime(gctx, sym)
		q = quote
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("start %s: %w", sym, err)
	}

	// The previous ticker must be gone before any new state exists,
	// otherwise a stale tick could land in the new session's buffer.
	c.stopCurrent()

	s := &liveSession{
		id:     uuid.NewString(),
		symbol: sym,
		window: window.New(c.capacity),
		state:  Starting,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	now := time.Now()
	s.window.Append(window.PricePoint{Timestamp: now, Price: q.Current})

	c.mu.Lock()
	c.cur = s
	c.pred = pred
	s.state = Polling
	c.mu.Unlock()

	log.Printf("session %s started for %s", s.id, sym)
	c.notify(s, *q)
	c.record(s, *q, now)

	go c.poll(ctx, s)
	return nil
}

// Stop cancels the current session, if any, and waits for its poll
// goroutine to exit.
func (c *Controller) Stop() {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.stopCurrent()
}

func (c *Controller) stopCurrent() {
	c.mu.Lock()
	s := c.cur
	c.cur = nil
	c.pred = nil
	c.mu.Unlock()
	if s == nil {
		return
	}
	close(s.stop)
	<-s.done
	c.mu.Lock()
	s.state = Stopped
	c.mu.Unlock()
	log.Printf("session %s stopped", s.id)
}

func (c *Controller) poll(ctx context.Context, s *liveSession) {
	defer close(s.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			// Nobody will call Stop for us; tear the session down so
			// the controller does not report a live session that
			// stopped ticking.
			c.mu.Lock()
			if c.cur == s {
				c.cur = nil
				c.pred = nil
			}
			s.state = Stopped
			c.mu.Unlock()
			log.Printf("session %s stopped: %v", s.id, ctx.Err())
			return
		case <-ticker.C:
			c.tick(ctx, s)
		}
	}
}

// tick runs one poll. Failures are logged and skipped: no state change,
// no buffer mutation, the loop keeps going.
func (c *Controller) tick(ctx context.Context, s *liveSession) {
	q, err := c.svc.Realtime(ctx, s.symbol)
	if err != nil {
		log.Printf("poll %s: %v", s.symbol, err)
		return
	}
	now := time.Now()

	c.mu.Lock()
	s.window.Append(window.PricePoint{Timestamp: now, Price: q.Current})
	c.mu.Unlock()

	c.notify(s, *q)
	c.record(s, *q, now)
}

func (c *Controller) notify(s *liveSession, q stockai.Quote) {
	if c.redraw == nil {
		return
	}
	c.mu.Lock()
	points := s.window.Snapshot()
	c.mu.Unlock()
	c.redraw(Update{
		SessionID: s.id,
		Symbol:    s.symbol,
		Quote:     q,
		Change:    q.Change(),
		Direction: q.Direction(),
		Points:    points,
	})
}

func (c *Controller) record(s *liveSession, q stockai.Quote, ts time.Time) {
	err := c.rec.RecordTick(&recorder.Tick{
		SessionID: s.id,
		Symbol:    s.symbol,
		Price:     q.Current,
		PrevClose: q.PrevClose,
		Timestamp: ts,
	})
	if err != nil {
		log.Printf("record tick %s: %v", s.symbol, err)
	}
}

// State reports the state of the current session, Idle when none exists.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return Idle
	}
	return c.cur.state
}

// Symbol returns the active session's symbol, empty when idle.
func (c *Controller) Symbol() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return ""
	}
	return c.cur.symbol
}

// SessionID returns the active session's id, empty when idle.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return ""
	}
	return c.cur.id
}

// Snapshot returns the live window's points in order.
func (c *Controller) Snapshot() []window.PricePoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return nil
	}
	return c.cur.window.Snapshot()
}

// Prediction returns the prediction set fetched when the current
// session started.
func (c *Controller) Prediction() *stockai.PredictionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pred
}
