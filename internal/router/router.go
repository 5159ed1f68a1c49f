package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"reelgate/internal/catalog"
	"reelgate/internal/gate"
	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/services/telegram"
	"reelgate/internal/session"
	"reelgate/internal/sponsors"
	"reelgate/internal/store"
)

// Transport is the outbound half of the Bot API the router needs.
type Transport interface {
	SendMessage(ctx context.Context, msg telegram.SendMessageRequest) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// callbackCheckSubs is the callback payload on the recheck button.
const callbackCheckSubs = "check_subs"

var filmCodePattern = regexp.MustCompile(`^\d+$`)

// Router turns inbound updates into service calls and user-facing replies.
type Router struct {
	transport Transport
	catalog   *catalog.Service
	sponsors  *sponsors.Service
	gate      *gate.Gate
	sessions  *session.Engine
	isAdmin   func(userID int64) bool
	logger    *slog.Logger
}

// New constructs a router. isAdmin may be nil, which means nobody is
// privileged.
func New(
	transport Transport,
	cat *catalog.Service,
	spon *sponsors.Service,
	g *gate.Gate,
	sessions *session.Engine,
	isAdmin func(int64) bool,
	logger *slog.Logger,
) *Router {
	if isAdmin == nil {
		isAdmin = func(int64) bool { return false }
	}
	return &Router{
		transport: transport,
		catalog:   cat,
		sponsors:  spon,
		gate:      g,
		sessions:  sessions,
		isAdmin:   isAdmin,
		logger:    logging.NewComponentLogger(logger, "router"),
	}
}

// HandleUpdate dispatches one update. Errors returned here are infrastructure
// faults; user mistakes are answered in-band and return nil.
func (r *Router) HandleUpdate(ctx context.Context, upd telegram.Update) error {
	switch {
	case upd.CallbackQuery != nil:
		return r.handleCallback(ctx, *upd.CallbackQuery)
	case upd.Message != nil && upd.Message.From != nil:
		return r.handleMessage(ctx, *upd.Message)
	default:
		return nil
	}
}

func (r *Router) handleMessage(ctx context.Context, msg telegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	key := session.Key{ChatID: msg.Chat.ID, UserID: msg.From.ID}

	// Commands always dispatch, even mid-session: starting a new workflow
	// replaces the active one.
	if strings.HasPrefix(text, "/") {
		return r.handleCommand(ctx, msg, key, text)
	}

	if r.sessions.Active(key) {
		return r.handleSessionInput(ctx, msg, key, text)
	}

	if filmCodePattern.MatchString(text) {
		code, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return r.handleFilmRequest(ctx, msg, code)
		}
	}

	return r.send(ctx, msg.Chat.ID, msgHelp)
}

func (r *Router) handleCommand(ctx context.Context, msg telegram.Message, key session.Key, text string) error {
	command, _, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@")

	admin := r.isAdmin(msg.From.ID)
	switch command {
	case "/start":
		if admin {
			return r.send(ctx, msg.Chat.ID, msgAdminWelcome)
		}
		return r.handleStart(ctx, msg)
	case "/add_film":
		if !admin {
			return r.send(ctx, msg.Chat.ID, msgHelp)
		}
		reply, err := r.sessions.Start(ctx, key, session.KindAddFilm)
		if err != nil {
			return r.fault(ctx, msg.Chat.ID, "start add_film", err)
		}
		return r.send(ctx, msg.Chat.ID, reply.Prompt)
	case "/add_sponsor", "/remove_sponsor":
		if !admin {
			return r.send(ctx, msg.Chat.ID, msgHelp)
		}
		kind := session.KindAddSponsor
		if command == "/remove_sponsor" {
			kind = session.KindRemoveSponsor
		}
		reply, err := r.sessions.Start(ctx, key, kind)
		if err != nil {
			return r.fault(ctx, msg.Chat.ID, "start sponsor workflow", err)
		}
		return r.send(ctx, msg.Chat.ID, msgSponsorWarning+"\n"+reply.Prompt)
	case "/get_sponsors":
		if !admin {
			return r.send(ctx, msg.Chat.ID, msgHelp)
		}
		return r.handleSponsorList(ctx, msg)
	default:
		return r.send(ctx, msg.Chat.ID, msgHelp)
	}
}

func (r *Router) handleStart(ctx context.Context, msg telegram.Message) error {
	decision, err := r.gate.Evaluate(ctx, msg.From.ID)
	if errors.Is(err, gate.ErrOracleUnavailable) {
		r.logger.Warn("oracle unavailable", logging.Error(err), logging.Int64("user_id", msg.From.ID))
		return r.send(ctx, msg.Chat.ID, msgOracleDown)
	}
	if err != nil {
		return r.fault(ctx, msg.Chat.ID, "evaluate on start", err)
	}
	if decision == gate.Denied {
		return r.sendDenied(ctx, msg.Chat.ID)
	}
	return r.send(ctx, msg.Chat.ID, msgWelcome)
}

func (r *Router) handleSessionInput(ctx context.Context, msg telegram.Message, key session.Key, text string) error {
	reply, err := r.sessions.Submit(ctx, key, text)
	if errors.Is(err, session.ErrNoSession) {
		return r.send(ctx, msg.Chat.ID, msgHelp)
	}
	if err != nil {
		return r.fault(ctx, msg.Chat.ID, "workflow submit", err)
	}
	return r.send(ctx, msg.Chat.ID, reply.Prompt)
}

func (r *Router) handleFilmRequest(ctx context.Context, msg telegram.Message, code int64) error {
	decision, err := r.gate.Evaluate(ctx, msg.From.ID)
	if errors.Is(err, gate.ErrOracleUnavailable) {
		r.logger.Warn("oracle unavailable", logging.Error(err), logging.Int64("user_id", msg.From.ID))
		return r.send(ctx, msg.Chat.ID, msgOracleDown)
	}
	if err != nil {
		return r.fault(ctx, msg.Chat.ID, "evaluate on lookup", err)
	}
	if decision == gate.Denied {
		return r.sendDenied(ctx, msg.Chat.ID)
	}

	entry, err := r.catalog.Lookup(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return r.send(ctx, msg.Chat.ID, fmt.Sprintf(msgFilmMiss, code))
	}
	if err != nil {
		return r.fault(ctx, msg.Chat.ID, "catalog lookup", err)
	}
	return r.transport.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:    msg.Chat.ID,
		Text:      formatFilm(entry),
		ParseMode: "Markdown",
	})
}

func (r *Router) handleSponsorList(ctx context.Context, msg telegram.Message) error {
	channels, err := r.sponsors.List(ctx)
	if err != nil {
		return r.fault(ctx, msg.Chat.ID, "sponsor list", err)
	}
	return r.send(ctx, msg.Chat.ID, formatSponsorList(channels))
}

func (r *Router) handleCallback(ctx context.Context, cb telegram.CallbackQuery) error {
	if cb.Data != callbackCheckSubs {
		return r.transport.AnswerCallbackQuery(ctx, cb.ID, "")
	}

	decision, err := r.gate.Recheck(ctx, cb.From.ID)
	if errors.Is(err, gate.ErrOracleUnavailable) {
		r.logger.Warn("oracle unavailable on recheck", logging.Error(err), logging.Int64("user_id", cb.From.ID))
		return r.transport.AnswerCallbackQuery(ctx, cb.ID, msgOracleDown)
	}
	if err != nil {
		if answerErr := r.transport.AnswerCallbackQuery(ctx, cb.ID, msgFault); answerErr != nil {
			r.logger.Warn("answer callback failed", logging.Error(answerErr))
		}
		return fmt.Errorf("recheck: %w", err)
	}

	if decision == gate.Allowed {
		if err := r.transport.AnswerCallbackQuery(ctx, cb.ID, msgRecheckPassed); err != nil {
			return err
		}
		if cb.Message != nil {
			return r.send(ctx, cb.Message.Chat.ID, msgWelcome)
		}
		return nil
	}
	return r.transport.AnswerCallbackQuery(ctx, cb.ID, msgRecheckFailed)
}

// sendDenied renders the sponsor list with the recheck button.
func (r *Router) sendDenied(ctx context.Context, chatID int64) error {
	channels, err := r.sponsors.List(ctx)
	if err != nil {
		return r.fault(ctx, chatID, "sponsor list for denial", err)
	}
	return r.transport.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID: chatID,
		Text:   formatDenied(channels),
		ReplyMarkup: &telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{
				{{Text: "✅ I subscribed", Data: callbackCheckSubs}},
			},
		},
	})
}

func (r *Router) send(ctx context.Context, chatID int64, text string) error {
	return r.transport.SendMessage(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: text})
}

// fault sends the generic failure line and propagates the underlying error so
// the daemon logs it. The user never sees internals.
func (r *Router) fault(ctx context.Context, chatID int64, operation string, err error) error {
	if sendErr := r.send(ctx, chatID, msgFault); sendErr != nil {
		attrs := []any{logging.Error(sendErr)}
		if updateID, ok := services.UpdateIDFromContext(ctx); ok {
			attrs = append(attrs, logging.Int64("update_id", updateID))
		}
		r.logger.Warn("failure notice not delivered", attrs...)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
