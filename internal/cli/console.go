package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quiz_answer_llm/internal/matcher"
	"quiz_answer_llm/internal/quiz"

	"github.com/pterm/pterm"
)

// consoleActions shows highlights and clicks on the terminal.
type consoleActions struct {
	out io.Writer
}

func newConsoleActions(out io.Writer) *consoleActions {
	return &consoleActions{out: out}
}

func (c *consoleActions) ClearHighlights() {}

func (c *consoleActions) Highlight(index int, text string) {
	pterm.Success.WithWriter(c.out).Printfln("Correct option %s: %s", matcher.Label(index), text)
}

func (c *consoleActions) Click(index int, _ string) {
	pterm.Info.WithWriter(c.out).Printfln("Auto-clicked option %s", matcher.Label(index))
}

func printSuccess(out io.Writer, msg string) {
	pterm.Success.WithWriter(out).Println(msg)
}

func printInfo(out io.Writer, msg string) {
	pterm.Info.WithWriter(out).Println(msg)
}

func writeOutcome(out io.Writer, outcome quiz.Outcome, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(out).Encode(outcome)
	}
	return writeHumanOutcome(out, outcome)
}

func writeHumanOutcome(out io.Writer, outcome quiz.Outcome) error {
	fmt.Fprintf(out, "Question: %s\n", outcome.Question)
	for i, opt := range outcome.Options {
		marker := " "
		if i == outcome.Index {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s. %s\n", marker, matcher.Label(i), opt)
	}

	fmt.Fprintln(out, "\nModel reply:")
	if reply := strings.TrimSpace(outcome.Reply); reply != "" {
		fmt.Fprintf(out, "- %s\n", reply)
	} else {
		fmt.Fprintln(out, "- (empty response)")
	}

	if outcome.Index < 0 {
		fmt.Fprintln(out, "\nNo exact match found. The model may have returned formatted or ambiguous output.")
		return nil
	}
	if outcome.Ambiguous {
		fmt.Fprintln(out, "\nSeveral options match the reply; the first one was chosen.")
	}
	return nil
}
