package cli

import (
	"errors"
	"time"
)

var (
	errNoPage                 = errors.New("a quiz page is required: pass --url or --html")
	errOptionsWithoutQuestion = errors.New("--option requires --question")
)

type PageInput struct {
	URL      string
	HTMLFile string
}

type WatchInput struct {
	Page     PageInput
	Interval time.Duration
}

type AnswerInput struct {
	Page     PageInput
	Question string
	Options  []string
	JSON     bool
}
