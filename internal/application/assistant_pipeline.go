package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const (
	DefaultReplyStagger   = 500 * time.Millisecond
	DefaultFallbackDelay  = time.Second
	DefaultRequestTimeout = 10 * time.Second
)

var ErrPipelineClosed = errors.New("assistant pipeline closed")

// ConversationSession is what the pipeline needs from the session store.
type ConversationSession interface {
	SessionReader
	EnsureConversationIdentity(ctx context.Context) (string, error)
}

type PipelineConfig struct {
	ReplyStagger   time.Duration
	FallbackDelay  time.Duration
	RequestTimeout time.Duration
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.ReplyStagger <= 0 {
		c.ReplyStagger = DefaultReplyStagger
	}
	if c.FallbackDelay <= 0 {
		c.FallbackDelay = DefaultFallbackDelay
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

type stagedReply struct {
	delay time.Duration
	text  string
}

// AssistantPipeline holds one chat transcript with the assistant. The
// transcript only grows and message ids increase in append order. Replies of
// a turn are delivered in the background at staggered offsets; Reset and
// Close cancel deliveries that are still pending.
type AssistantPipeline struct {
	api     ports.AssistantAPI
	session ConversationSession
	clock   ports.Clock
	cfg     PipelineConfig
	logger  zerolog.Logger

	lifetime context.Context
	stop     context.CancelFunc
	wg       sync.WaitGroup

	notifyMu  sync.Mutex
	listeners []func(domain.Message)

	mu         sync.Mutex
	transcript []domain.Message
	lastID     domain.MessageID
	input      string
	awaiting   bool
	identity   string
	turn       uint64
	turnCtx    context.Context
	cancelTurn context.CancelFunc
	closed     bool
}

func NewAssistantPipeline(ctx context.Context, api ports.AssistantAPI, session ConversationSession, clock ports.Clock, cfg PipelineConfig, logger zerolog.Logger) *AssistantPipeline {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	lifetime, stop := context.WithCancel(context.Background())
	turnCtx, cancelTurn := context.WithCancel(lifetime)

	p := &AssistantPipeline{
		api:        api,
		session:    session,
		clock:      clock,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		lifetime:   lifetime,
		stop:       stop,
		turnCtx:    turnCtx,
		cancelTurn: cancelTurn,
	}
	p.seedGreeting()

	identity, err := session.EnsureConversationIdentity(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("conversation identity not persisted")
	}
	p.identity = identity

	return p
}

func (p *AssistantPipeline) seedGreeting() {
	p.lastID++
	p.transcript = append(p.transcript, domain.Message{
		ID:     p.lastID,
		Text:   domain.AssistantGreeting,
		Author: domain.AuthorAssistant,
		SentAt: p.clock.Now(),
	})
}

// OnAppend registers a listener that sees every appended message in order.
func (p *AssistantPipeline) OnAppend(listener func(domain.Message)) {
	if listener == nil {
		return
	}
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	p.listeners = append(p.listeners, listener)
}

// Submit sends one user message. Blank text is ignored. While a turn is
// awaiting its reply further submissions are rejected with
// domain.ErrAwaitingReply. Remote failures never surface here; they turn into
// a fallback reply.
func (p *AssistantPipeline) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPipelineClosed
	}
	if p.awaiting {
		p.mu.Unlock()
		return domain.ErrAwaitingReply
	}
	p.awaiting = true
	p.input = ""
	turn := p.turn
	turnCtx := p.turnCtx
	identity := p.identity
	p.mu.Unlock()

	p.append(turn, domain.AuthorUser, text)

	if identity == "" {
		var err error
		identity, err = p.session.EnsureConversationIdentity(ctx)
		if err != nil {
			p.logger.Warn().Err(err).Msg("conversation identity not persisted")
		}
		p.mu.Lock()
		if p.turn == turn {
			p.identity = identity
		}
		p.mu.Unlock()
	}

	request := domain.AssistantRequest{
		Sender:     identity,
		Message:    text,
		Credential: p.session.GetSession().CredentialToken,
	}

	units, err := p.send(ctx, turnCtx, request)
	plan := p.plan(text, units, err)
	if err != nil {
		p.logger.Warn().Err(err).Uint64("turn", turn).Msg("assistant request failed")
	}

	p.mu.Lock()
	if p.turn != turn || p.closed {
		p.mu.Unlock()
		return nil
	}
	p.wg.Add(1)
	p.awaiting = false
	p.mu.Unlock()

	go p.deliver(turnCtx, turn, plan)
	return nil
}

func (p *AssistantPipeline) send(ctx context.Context, turnCtx context.Context, request domain.AssistantRequest) ([]domain.ReplyUnit, error) {
	requestCtx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()
	stopOnReset := context.AfterFunc(turnCtx, cancel)
	defer stopOnReset()

	units, err := p.api.Send(requestCtx, request)
	if err != nil {
		return nil, fmt.Errorf("send to assistant: %w", err)
	}
	return units, nil
}

func (p *AssistantPipeline) plan(query string, units []domain.ReplyUnit, err error) []stagedReply {
	if err != nil {
		return []stagedReply{{delay: p.cfg.FallbackDelay, text: domain.AssistantApology}}
	}

	// Units keep their batch position, so a textless unit still takes a slot.
	var plan []stagedReply
	for i, unit := range units {
		if strings.TrimSpace(unit.Text) == "" {
			continue
		}
		plan = append(plan, stagedReply{delay: time.Duration(i) * p.cfg.ReplyStagger, text: unit.Text})
	}
	if len(plan) == 0 {
		return []stagedReply{{delay: p.cfg.FallbackDelay, text: domain.AssistantEcho(query)}}
	}
	return plan
}

func (p *AssistantPipeline) deliver(ctx context.Context, turn uint64, plan []stagedReply) {
	defer p.wg.Done()

	start := time.Now()
	for _, reply := range plan {
		if wait := reply.delay - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if !p.append(turn, domain.AuthorAssistant, reply.text) {
			return
		}
	}
}

// append adds a message for the given turn. It reports false when the turn
// has been superseded by Reset or Close.
func (p *AssistantPipeline) append(turn uint64, author domain.Author, text string) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.turn != turn || p.closed {
		p.mu.Unlock()
		return false
	}
	p.lastID++
	message := domain.Message{ID: p.lastID, Text: text, Author: author, SentAt: p.clock.Now()}
	p.transcript = append(p.transcript, message)
	p.mu.Unlock()

	for _, listener := range p.listeners {
		listener(message)
	}
	return true
}

// Reset starts a fresh conversation: pending deliveries are cancelled, the
// transcript restarts from the greeting and the identity is re-read from the
// session on the next submission. It only changes when the session was
// cleared in between.
func (p *AssistantPipeline) Reset() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.turn++
	p.cancelTurn()
	p.turnCtx, p.cancelTurn = context.WithCancel(p.lifetime)
	p.transcript = nil
	p.awaiting = false
	p.input = ""
	p.identity = ""
	p.seedGreeting()
	greeting := p.transcript[0]
	p.mu.Unlock()

	for _, listener := range p.listeners {
		listener(greeting)
	}
}

// Close cancels pending deliveries and waits for them to stop.
func (p *AssistantPipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.turn++
	p.mu.Unlock()

	p.stop()
	p.wg.Wait()
}

// Wait blocks until every scheduled delivery has been appended or cancelled.
func (p *AssistantPipeline) Wait() {
	p.wg.Wait()
}

func (p *AssistantPipeline) Transcript() []domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Message(nil), p.transcript...)
}

func (p *AssistantPipeline) Awaiting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.awaiting
}

func (p *AssistantPipeline) Identity() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.identity
}

func (p *AssistantPipeline) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

func (p *AssistantPipeline) SetInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.input = text
}

// UseSuggestion loads suggestion i into the input without sending it.
func (p *AssistantPipeline) UseSuggestion(i int) error {
	if i < 0 || i >= len(domain.AssistantSuggestions) {
		return fmt.Errorf("suggestion %d out of range", i)
	}
	p.SetInput(domain.AssistantSuggestions[i].Text)
	return nil
}
