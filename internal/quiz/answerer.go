// Package quiz runs the answer cycle for a watched quiz page.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz_answer_llm/internal/config"
	"quiz_answer_llm/internal/credentials"
	"quiz_answer_llm/internal/matcher"

	"go.uber.org/zap"
)

var (
	ErrNoOptions         = errors.New("no options found")
	ErrBusy              = errors.New("answer request already in progress")
	ErrMissingCredential = errors.New("api key is not set")
	ErrNoMatch           = errors.New("no option matches the model reply")
)

type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type Outcome struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Reply     string   `json:"reply"`
	Index     int      `json:"index"`
	Label     string   `json:"label"`
	Option    string   `json:"option"`
	Ambiguous bool     `json:"ambiguous,omitempty"`
}

type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

type Asker interface {
	Ask(ctx context.Context, apiKey, question string, options []string) (string, error)
}

type SettingsOpener interface {
	Open() error
}

type Answerer struct {
	keys       KeySource
	asker      Asker
	settings   SettingsOpener
	autoClick  bool
	clickDelay time.Duration
	logger     *zap.Logger
}

type Options struct {
	AutoClick  bool
	ClickDelay time.Duration
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		AutoClick:  cfg.AutoClick,
		ClickDelay: cfg.ClickDelay,
	}
}

func NewAnswerer(keys KeySource, asker Asker, settings SettingsOpener, opts Options, logger *zap.Logger) *Answerer {
	return &Answerer{
		keys:       keys,
		asker:      asker,
		settings:   settings,
		autoClick:  opts.AutoClick,
		clickDelay: opts.ClickDelay,
		logger:     logger.Named("quiz"),
	}
}

// Answer runs one cycle for q: ask the model, match its reply against the
// options and act on the match through the session's Actions.
func (a *Answerer) Answer(ctx context.Context, sess *Session, q Question) (Outcome, error) {
	if len(q.Options) == 0 {
		return Outcome{}, ErrNoOptions
	}
	for i, opt := range q.Options {
		a.logger.Debug("option", zap.String("label", matcher.Label(i)), zap.String("text", opt))
	}

	reply, err := a.fetchReply(ctx, sess, q)
	if err != nil {
		return Outcome{}, err
	}

	sess.actions.ClearHighlights()

	matches := matcher.Matches(reply, q.Options)
	if len(matches) == 0 {
		return Outcome{Question: q.Text, Options: q.Options, Reply: reply, Index: -1}, fmt.Errorf("%w: %q", ErrNoMatch, reply)
	}

	idx := matches[0]
	outcome := Outcome{
		Question:  q.Text,
		Options:   q.Options,
		Reply:     reply,
		Index:     idx,
		Label:     matcher.Label(idx),
		Option:    q.Options[idx],
		Ambiguous: len(matches) > 1,
	}
	if outcome.Ambiguous {
		a.logger.Warn("several options match the reply; using the first",
			zap.String("reply", reply),
			zap.Ints("indexes", matches),
		)
	}

	sess.actions.Highlight(idx, outcome.Option)
	a.logger.Info("option highlighted",
		zap.String("label", outcome.Label),
		zap.String("option", outcome.Option),
	)

	if a.autoClick {
		a.scheduleClick(ctx, sess, idx, outcome.Option)
	}
	return outcome, nil
}

// fetchReply holds the session's busy flag for the duration of the request.
// A concurrent call returns ErrBusy at once instead of waiting.
func (a *Answerer) fetchReply(ctx context.Context, sess *Session, q Question) (string, error) {
	if !sess.tryAcquire() {
		return "", ErrBusy
	}
	defer sess.release()

	key, err := a.keys.APIKey(ctx)
	if err != nil {
		if errors.Is(err, credentials.ErrMissingKey) {
			if openErr := a.settings.Open(); openErr != nil {
				a.logger.Warn("could not open settings", zap.Error(openErr))
			}
			return "", ErrMissingCredential
		}
		return "", fmt.Errorf("read api key: %w", err)
	}

	return a.asker.Ask(ctx, key, q.Text, q.Options)
}

func (a *Answerer) scheduleClick(ctx context.Context, sess *Session, idx int, text string) {
	if a.clickDelay <= 0 {
		sess.actions.Click(idx, text)
		return
	}

	sess.pending.Add(1)
	go func() {
		defer sess.pending.Done()
		timer := time.NewTimer(a.clickDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			a.logger.Debug("auto-click cancelled", zap.String("option", text))
		case <-timer.C:
			sess.actions.Click(idx, text)
			a.logger.Info("auto-clicked option", zap.String("label", matcher.Label(idx)))
		}
	}()
}
