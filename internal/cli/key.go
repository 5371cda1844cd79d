package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"quiz_answer_llm/internal/credentials"

	"github.com/spf13/cobra"
)

func (r *Runner) newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the model API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [KEY]",
		Short: "Save the API key (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.runKeySet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved API key, masked",
		Args:  cobra.NoArgs,
		RunE:  r.runKeyShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the saved API key",
		Args:  cobra.NoArgs,
		RunE:  r.runKeyRemove,
	})

	return cmd
}

func (r *Runner) runKeySet(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			key = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	if err := r.store.SetAPIKey(key); err != nil {
		if errors.Is(err, credentials.ErrEmptyKey) {
			return errors.New("enter a non-empty API key to save")
		}
		return err
	}
	printSuccess(cmd.OutOrStdout(), "API key saved: "+credentials.Mask(strings.TrimSpace(key)))
	return nil
}

func (r *Runner) runKeyShow(cmd *cobra.Command, _ []string) error {
	key, source, err := r.store.Lookup(cmd.Context())
	if err != nil && !errors.Is(err, credentials.ErrMissingKey) {
		return err
	}

	line := "API key: " + credentials.Mask(key)
	if source != credentials.SourceNone {
		line += fmt.Sprintf(" (from %s)", source)
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

func (r *Runner) runKeyRemove(cmd *cobra.Command, _ []string) error {
	if err := r.store.RemoveAPIKey(); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "API key removed.")
	return nil
}
