package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
)

// HandlerFunc processes one inbound message.
type HandlerFunc func(ctx context.Context, msg *tgbotapi.Message) error

// Router dispatches messages to command handlers, with dialog-state handlers
// picking up the non-command steps of multi-message flows. Commands always
// take precedence so a user can escape an in-flight flow.
type Router struct {
	mu       sync.RWMutex
	commands map[string]HandlerFunc
	states   map[domain.DialogState]HandlerFunc
	fallback HandlerFunc
}

func NewRouter() *Router {
	return &Router{
		commands: make(map[string]HandlerFunc),
		states:   make(map[domain.DialogState]HandlerFunc),
	}
}

// Command registers a handler for a slash command (name without the slash).
func (r *Router) Command(name string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name] = handler
}

// State registers a handler for a dialog step.
func (r *Router) State(state domain.DialogState, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state] = handler
}

// Fallback registers the handler for messages that match nothing else.
func (r *Router) Fallback(handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = handler
}

// Dispatch routes one message given the chat's current dialog state.
// Unmatched messages are ignored unless a fallback is registered.
func (r *Router) Dispatch(ctx context.Context, msg *tgbotapi.Message, state domain.DialogState) error {
	if msg == nil {
		return nil
	}

	r.mu.RLock()
	var handler HandlerFunc
	if msg.IsCommand() {
		handler = r.commands[msg.Command()]
	} else if state != domain.DialogIdle {
		handler = r.states[state]
	}
	if handler == nil {
		handler = r.fallback
	}
	r.mu.RUnlock()

	if handler == nil {
		return nil
	}
	return handler(ctx, msg)
}
