package attrs

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrHookNotRegistered is returned when a bootstrap entry references an
// attribute for which no Go-side hook was registered.
var ErrHookNotRegistered = errors.New("attrs: no hook registered for attribute")

// ErrAlreadyRan is returned when Run is called more than once.
var ErrAlreadyRan = errors.New("attrs: scheduler already ran")

// State tracks the lifecycle of the attachment scheduler.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return "unknown"
	}
}

// Hook is the Go-side handler for an attribute's attach behavior. It receives
// the attribute instance and the context for the decorated element.
type Hook func(Instance, Context) error

// Scheduler fires attach hooks in bootstrap order: elements in source order,
// annotations on each element top to bottom. The first hook error fails the
// whole run; remaining hooks never fire.
type Scheduler struct {
	mu     sync.Mutex
	state  State
	hooks  map[string]Hook
	logger *zap.Logger
}

// NewScheduler creates a scheduler in the NotStarted state.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		state:  StateNotStarted,
		hooks:  make(map[string]Hook),
		logger: logger,
	}
}

// RegisterHook binds a hook to an attribute name. Hooks may only be
// registered before the scheduler runs.
func (s *Scheduler) RegisterHook(attribute string, hook Hook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return fmt.Errorf("attrs: cannot register hook for %s in state %s", attribute, s.state)
	}
	if _, exists := s.hooks[attribute]; exists {
		return fmt.Errorf("attrs: hook for attribute %s already registered", attribute)
	}
	s.hooks[attribute] = hook
	return nil
}

// State returns the scheduler's current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run fires every attach hook recorded in the registry, in bootstrap order.
// It transitions NotStarted -> Running -> Completed, or Failed on the first
// hook error. A scheduler runs at most once.
func (s *Scheduler) Run() error {
	s.mu.Lock()
	if s.state != StateNotStarted {
		s.mu.Unlock()
		return ErrAlreadyRan
	}
	s.state = StateRunning
	hooks := s.hooks
	s.mu.Unlock()

	globalRegistry.mu.RLock()
	runList := append([]UseMetadata(nil), globalRegistry.runList...)
	globalRegistry.mu.RUnlock()

	s.logger.Info("attachment scheduler starting", zap.Int("hooks", len(runList)))

	for i, use := range runList {
		decl, ok := Declaration(use.Attribute)
		if !ok || decl.Attach == nil {
			s.fail()
			return fmt.Errorf("attrs: bootstrap entry %d references attribute %s without an attach hook", i, use.Attribute)
		}

		hook, registered := hooks[use.Attribute]
		if !registered {
			s.fail()
			s.logger.Error("hook not registered",
				zap.String("attribute", use.Attribute),
				zap.String("element", use.Element))
			return fmt.Errorf("%w: %s", ErrHookNotRegistered, use.Attribute)
		}

		ctx := contextFor(BootstrapEntry{
			Attribute: use.Attribute,
			Element:   use.Element,
			Context:   decl.Attach.ContextType,
		})

		s.logger.Debug("firing attach hook",
			zap.String("attribute", use.Attribute),
			zap.String("element", use.Element),
			zap.Int("position", i))

		if err := hook(instanceFromUse(use), ctx); err != nil {
			s.fail()
			s.logger.Error("attach hook failed",
				zap.String("attribute", use.Attribute),
				zap.String("element", use.Element),
				zap.Error(err))
			return fmt.Errorf("attrs: attach hook for @%s on %s: %w", use.Attribute, use.Element, err)
		}
	}

	s.mu.Lock()
	s.state = StateCompleted
	s.mu.Unlock()
	s.logger.Info("attachment scheduler completed", zap.Int("hooks", len(runList)))
	return nil
}

func (s *Scheduler) fail() {
	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
}
