package llm

import (
	"fmt"
	"strings"

	"quiz_answer_llm/internal/matcher"

	"github.com/samber/lo"
)

const instruction = "Which option is correct? Just return the full text of the correct option."

// BuildPrompt renders a question and its options as a single user message,
// labelling options A, B, C and so on.
func BuildPrompt(question string, options []string) string {
	lines := lo.Map(options, func(option string, i int) string {
		return fmt.Sprintf("%s. %s", matcher.Label(i), option)
	})

	return fmt.Sprintf("Question: %s\nOptions:\n%s\n\n%s", question, strings.Join(lines, "\n"), instruction)
}
