package quiz

import (
	"context"
	"errors"
	"strings"

	"quiz_answer_llm/internal/page"

	"go.uber.org/zap"
)

type Handler struct {
	answerer *Answerer
	session  *Session
}

func (a *Answerer) Handler(sess *Session) *Handler {
	return &Handler{answerer: a, session: sess}
}

var _ page.Listener = (*Handler)(nil)

// OnContentChanged answers the question in snap unless it was already seen.
// Failures are logged; the next question change starts a fresh cycle.
func (h *Handler) OnContentChanged(ctx context.Context, snap page.Snapshot) {
	question := strings.TrimSpace(snap.Question)
	if question == "" || !h.session.Observe(question) {
		return
	}

	logger := h.answerer.logger
	logger.Info("question found", zap.String("question", question), zap.Int("options", len(snap.Options)))

	_, err := h.answerer.Answer(ctx, h.session, Question{Text: question, Options: snap.Options})
	if err != nil {
		h.answerer.logFailure(question, err)
	}
}

func (a *Answerer) logFailure(question string, err error) {
	fields := []zap.Field{zap.String("question", question), zap.Error(err)}

	switch {
	case errors.Is(err, ErrBusy):
		a.logger.Info("answer request already in progress; skipping", fields...)
	case errors.Is(err, ErrNoOptions), errors.Is(err, ErrNoMatch):
		a.logger.Warn("question not answered", fields...)
	case errors.Is(err, context.Canceled):
		a.logger.Debug("answer cancelled", fields...)
	default:
		a.logger.Error("answer failed", fields...)
	}
}
