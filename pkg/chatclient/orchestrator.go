package chatclient

import (
	"context"
	"errors"
	"strings"
	"sync"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/session"
)

type State int

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	if s == StateSending {
		return "sending"
	}
	return "idle"
}

var (
	// ErrTurnInFlight rejects a send while another turn is outstanding
	ErrTurnInFlight = errors.New("a message is already being sent")
	ErrEmptyMessage = errors.New("message is empty")
)

// Hooks lets a UI follow the orchestrator. Callbacks run on the sending
// goroutine and must not call back into the orchestrator.
type Hooks struct {
	OnTyping func(typing bool)
	OnChange func()
}

type Options struct {
	AccountID string
	Language  string
	Hooks     Hooks
}

// Orchestrator sequences chat turns: one turn in flight at a time, the user
// message shown immediately, and history left consistent on every outcome.
type Orchestrator struct {
	transport Transport
	session   *session.Manager
	logger    logger.ILogger
	opts      Options

	mu             sync.Mutex
	state          State
	typing         bool
	visitor        lead.VisitorInfo
	errorIndicator string
	lastSource     chat.Source
}

func NewOrchestrator(transport Transport, sess *session.Manager, log logger.ILogger, opts Options) *Orchestrator {
	return &Orchestrator{
		transport: transport,
		session:   sess,
		logger:    log,
		opts:      opts,
	}
}

// Send runs one turn. It returns ErrTurnInFlight if a turn is outstanding and
// an ErrTransport-wrapped error when the server could not be reached; in that
// case no bot message is appended and ErrorIndicator is set.
func (o *Orchestrator) Send(ctx context.Context, text string) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, ErrEmptyMessage
	}

	o.mu.Lock()
	if o.state == StateSending {
		o.mu.Unlock()
		return Response{}, ErrTurnInFlight
	}
	o.state = StateSending
	o.typing = true
	o.mu.Unlock()
	o.emitTyping(true)

	prior := o.session.Messages()
	o.session.Append(ctx, chat.Message{Role: chat.RoleUser, Content: text})
	o.emitChange()

	visitorID := o.session.VisitorID(ctx)
	o.mu.Lock()
	o.visitor.VisitorID = visitorID
	visitor := o.visitor
	o.mu.Unlock()

	resp, err := o.transport.Respond(ctx, Request{
		Message:          text,
		AccountID:        o.opts.AccountID,
		VisitorInfo:      visitor,
		ConversationID:   o.session.ConversationID(),
		PreviousMessages: prior,
	})

	if err != nil {
		o.logger.Warn("CHATCLIENT", "Turn failed", map[string]interface{}{
			"conversation_id": o.session.ConversationID(),
			"error":           err.Error(),
		})
		o.finish(func() {
			o.errorIndicator = TransportErrorMessage(o.opts.Language)
		})
		if !errors.Is(err, ErrTransport) {
			err = errors.Join(ErrTransport, err)
		}
		return Response{}, err
	}

	o.session.Append(ctx, chat.Message{
		Role:       chat.RoleBot,
		Content:    resp.Response,
		Properties: resp.PropertyRecommendations,
	})
	if resp.ConversationID != "" && resp.ConversationID != o.session.ConversationID() {
		o.session.SetConversationID(ctx, resp.ConversationID)
	}

	o.finish(func() {
		if resp.LeadInfo != nil {
			o.visitor = lead.Merge(o.visitor, *resp.LeadInfo)
		}
		o.errorIndicator = ""
		o.lastSource = resp.Source
	})
	return resp, nil
}

// finish applies the outcome and returns to Idle
func (o *Orchestrator) finish(apply func()) {
	o.mu.Lock()
	apply()
	o.typing = false
	o.state = StateIdle
	o.mu.Unlock()

	o.emitTyping(false)
	o.emitChange()
}

func (o *Orchestrator) emitTyping(typing bool) {
	if o.opts.Hooks.OnTyping != nil {
		o.opts.Hooks.OnTyping(typing)
	}
}

func (o *Orchestrator) emitChange() {
	if o.opts.Hooks.OnChange != nil {
		o.opts.Hooks.OnChange()
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Typing reports whether the typing indicator is shown
func (o *Orchestrator) Typing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.typing
}

// ErrorIndicator is the inline error text of the last failed turn, empty
// after a success.
func (o *Orchestrator) ErrorIndicator() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errorIndicator
}

// LastSource is the source tag of the last answered turn
func (o *Orchestrator) LastSource() chat.Source {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSource
}

func (o *Orchestrator) VisitorInfo() lead.VisitorInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visitor
}

func (o *Orchestrator) Messages() []chat.Message {
	return o.session.Messages()
}

func (o *Orchestrator) ConversationID() string {
	return o.session.ConversationID()
}
