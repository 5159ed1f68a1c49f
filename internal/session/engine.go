package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"reelgate/internal/catalog"
	"reelgate/internal/config"
	"reelgate/internal/logging"
	"reelgate/internal/sponsors"
	"reelgate/internal/store"
)

// Kind identifies an authoring workflow.
type Kind int

const (
	KindAddFilm Kind = iota
	KindAddSponsor
	KindRemoveSponsor
)

func (k Kind) String() string {
	switch k {
	case KindAddFilm:
		return "add_film"
	case KindAddSponsor:
		return "add_sponsor"
	case KindRemoveSponsor:
		return "remove_sponsor"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key identifies one authoring session: one conversation, one operator.
type Key struct {
	ChatID int64
	UserID int64
}

// Outcome classifies the engine's reaction to one submitted input.
type Outcome int

const (
	// Advanced means the input was accepted and the session moved to the
	// next step.
	Advanced Outcome = iota
	// Rejected means the input failed validation; the session stays on the
	// same step.
	Rejected
	// Completed means the final step was accepted and the record committed.
	Completed
	// Cancelled means the cancellation token ended the session.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Rejected:
		return "rejected"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Reply carries the outcome plus the text to send back to the operator.
type Reply struct {
	Outcome Outcome
	Prompt  string
}

// ErrNoSession is returned when Submit is called for a key with no active
// session.
var ErrNoSession = errors.New("no active session")

type step struct {
	field    string
	prompt   string
	validate func(ctx context.Context, fields map[string]string, text string) (value, reject string, err error)
}

type state struct {
	kind      Kind
	stepIndex int
	fields    map[string]string
	updatedAt time.Time
}

// Engine drives multi-step authoring sessions. Sessions live in memory only;
// a process restart drops whatever was in flight.
type Engine struct {
	catalog    *catalog.Service
	sponsors   *sponsors.Service
	cancelWord string
	logger     *slog.Logger

	mu       sync.Mutex
	sessions map[Key]*state
}

// NewEngine constructs a workflow engine.
func NewEngine(cat *catalog.Service, spon *sponsors.Service, cfg *config.Config, logger *slog.Logger) *Engine {
	cancelWord := "q"
	if cfg != nil && cfg.Workflow.CancelWord != "" {
		cancelWord = cfg.Workflow.CancelWord
	}
	return &Engine{
		catalog:    cat,
		sponsors:   spon,
		cancelWord: cancelWord,
		logger:     logging.NewComponentLogger(logger, "session"),
		sessions:   make(map[Key]*state),
	}
}

// Active reports whether the key has a session in flight.
func (e *Engine) Active(key Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[key]
	return ok
}

// Start begins a workflow for the key, replacing any session already in
// flight there: only one authoring flow per operator-conversation is
// meaningful, so the last start wins.
func (e *Engine) Start(ctx context.Context, key Key, kind Kind) (Reply, error) {
	e.mu.Lock()
	e.sessions[key] = &state{
		kind:      kind,
		fields:    make(map[string]string),
		updatedAt: time.Now(),
	}
	e.mu.Unlock()

	e.logger.Info("workflow started",
		logging.String("kind", kind.String()),
		logging.Int64("chat_id", key.ChatID),
		logging.Int64("user_id", key.UserID),
	)
	return Reply{Outcome: Advanced, Prompt: e.introFor(kind)}, nil
}

// Cancel discards the session for the key, if any.
func (e *Engine) Cancel(key Key) {
	e.mu.Lock()
	delete(e.sessions, key)
	e.mu.Unlock()
}

// Sweep removes sessions idle since before the cutoff and returns how many
// were discarded.
func (e *Engine) Sweep(cutoff time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	swept := 0
	for key, sess := range e.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(e.sessions, key)
			swept++
		}
	}
	if swept > 0 {
		e.logger.Info("expired sessions discarded", logging.Int("count", swept))
	}
	return swept
}

// Submit feeds one operator input into the active session. The cancellation
// token is honoured before any step validation; rejected input re-prompts the
// same step; final-step acceptance commits the collected record.
func (e *Engine) Submit(ctx context.Context, key Key, text string) (Reply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, ok := e.sessions[key]
	if !ok {
		return Reply{}, ErrNoSession
	}

	trimmed := strings.TrimSpace(text)
	if strings.EqualFold(trimmed, e.cancelWord) {
		delete(e.sessions, key)
		e.logger.Info("workflow cancelled",
			logging.String("kind", sess.kind.String()),
			logging.Int64("user_id", key.UserID),
		)
		return Reply{Outcome: Cancelled, Prompt: "Operation canceled. Please start again."}, nil
	}

	steps := e.stepsFor(sess.kind)
	current := steps[sess.stepIndex]

	value, reject, err := current.validate(ctx, sess.fields, trimmed)
	if err != nil {
		return Reply{}, err
	}
	if reject != "" {
		return Reply{Outcome: Rejected, Prompt: reject}, nil
	}

	sess.fields[current.field] = value
	sess.updatedAt = time.Now()

	// Skip steps already collected so a commit-race correction only asks
	// for the conflicting field again.
	next := sess.stepIndex + 1
	for next < len(steps) {
		if _, done := sess.fields[steps[next].field]; !done {
			break
		}
		next++
	}
	if next < len(steps) {
		sess.stepIndex = next
		return Reply{Outcome: Advanced, Prompt: steps[next].prompt}, nil
	}

	return e.commit(ctx, key, sess)
}

func (e *Engine) commit(ctx context.Context, key Key, sess *state) (Reply, error) {
	switch sess.kind {
	case KindAddFilm:
		return e.commitFilm(ctx, key, sess)
	case KindAddSponsor:
		return e.commitSponsor(ctx, key, sess, true)
	case KindRemoveSponsor:
		return e.commitSponsor(ctx, key, sess, false)
	default:
		delete(e.sessions, key)
		return Reply{}, fmt.Errorf("unknown workflow kind %d", int(sess.kind))
	}
}

func (e *Engine) commitFilm(ctx context.Context, key Key, sess *state) (Reply, error) {
	code, _ := strconv.ParseInt(sess.fields["code"], 10, 64)
	year, _ := strconv.Atoi(sess.fields["year"])
	entry := store.CatalogEntry{
		Code:        code,
		Title:       sess.fields["title"],
		Director:    sess.fields["director"],
		Year:        year,
		Description: sess.fields["description"],
	}

	err := e.catalog.Create(ctx, entry)
	if errors.Is(err, store.ErrDuplicate) {
		// The code was free when collected but got taken mid-session. Send
		// the operator back to the code step; the rest of the fields stand.
		sess.stepIndex = 0
		delete(sess.fields, "code")
		sess.updatedAt = time.Now()
		return Reply{
			Outcome: Rejected,
			Prompt:  "That film code was taken while you were typing. Enter a different code:",
		}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	delete(e.sessions, key)
	e.logger.Info("workflow committed",
		logging.String("kind", KindAddFilm.String()),
		logging.Int64("code", entry.Code),
		logging.Int64("user_id", key.UserID),
	)
	return Reply{Outcome: Completed, Prompt: "✅ Film added"}, nil
}

func (e *Engine) commitSponsor(ctx context.Context, key Key, sess *state, adding bool) (Reply, error) {
	channel := sess.fields["channel"]

	var err error
	if adding {
		err = e.sponsors.Add(ctx, channel)
	} else {
		err = e.sponsors.Remove(ctx, channel)
	}
	if errors.Is(err, store.ErrDuplicate) {
		return Reply{Outcome: Rejected, Prompt: fmt.Sprintf("%s is already in the sponsor list. Enter another channel:", channel)}, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return Reply{Outcome: Rejected, Prompt: fmt.Sprintf("There is no %s in the sponsor list. Enter another channel:", channel)}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	delete(e.sessions, key)
	verb := "added"
	if !adding {
		verb = "removed"
	}
	e.logger.Info("workflow committed",
		logging.String("kind", sess.kind.String()),
		logging.String("channel", channel),
		logging.Int64("user_id", key.UserID),
	)
	return Reply{Outcome: Completed, Prompt: fmt.Sprintf("Channel %q has been %s", channel, verb)}, nil
}
