package cli

import (
	"encoding/json"
	"fmt"

	"quiz_answer_llm/internal/matcher"
	"quiz_answer_llm/internal/quiz"

	"github.com/spf13/cobra"
)

type matchResult struct {
	Reply   string `json:"reply"`
	Matched bool   `json:"matched"`
	Index   int    `json:"index"`
	Label   string `json:"label,omitempty"`
	Option  string `json:"option,omitempty"`
}

func newMatchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match REPLY OPTION...",
		Short: "Show which option a model reply selects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, options := args[0], args[1:]
			result := matchResult{Reply: reply, Index: -1}
			if idx, ok := matcher.Match(reply, options); ok {
				result = matchResult{
					Reply:   reply,
					Matched: true,
					Index:   idx,
					Label:   matcher.Label(idx),
					Option:  options[idx],
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := json.NewEncoder(out).Encode(result); err != nil {
					return err
				}
			} else if result.Matched {
				fmt.Fprintf(out, "%s. %s (index %d)\n", result.Label, result.Option, result.Index)
			} else {
				fmt.Fprintln(out, "no match")
			}

			if !result.Matched {
				return quiz.ErrNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON format")
	return cmd
}
