// Package page reads quiz questions out of an HTML page and reports when
// they change.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"

	"quiz_answer_llm/internal/config"

	"golang.org/x/net/html"
)

var (
	ErrBadSelector = errors.New("unsupported selector")
	ErrWaitTimeout = errors.New("timeout waiting for question")
)

type Snapshot struct {
	Question string
	Options  []string
}

func (s Snapshot) HasQuestion() bool {
	return s.Question != ""
}

type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Listener is notified with every snapshot that carries a question.
type Listener interface {
	OnContentChanged(ctx context.Context, snap Snapshot)
}

type ListenerFunc func(ctx context.Context, snap Snapshot)

func (f ListenerFunc) OnContentChanged(ctx context.Context, snap Snapshot) {
	f(ctx, snap)
}

type Parser struct {
	question Selector
	option   Selector
}

func NewParser(cfg config.Config) (*Parser, error) {
	question, err := ParseSelector(cfg.QuestionSelector)
	if err != nil {
		return nil, fmt.Errorf("question selector: %w", err)
	}
	option, err := ParseSelector(cfg.OptionSelector)
	if err != nil {
		return nil, fmt.Errorf("option selector: %w", err)
	}
	return &Parser{question: question, option: option}, nil
}

func (p *Parser) Parse(r io.Reader) (Snapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse html: %w", err)
	}
	return p.extract(doc), nil
}

func (p *Parser) extract(doc *html.Node) Snapshot {
	var snap Snapshot

	for _, c := range p.question.containers(doc) {
		if el := p.question.target(c); el != nil {
			snap.Question = text(el)
			break
		}
	}

	for _, c := range p.option.containers(doc) {
		snap.Options = append(snap.Options, text(p.option.target(c)))
	}

	return snap
}
