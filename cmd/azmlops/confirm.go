package main

import (
	"fmt"

	"github.com/mlopsworks/azmlops/internal/terminal"
	"github.com/spf13/cobra"
)

// confirmDestroy gates destructive commands behind a prompt unless the user
// passed --yes.
func confirmDestroy(cmd *cobra.Command, prompt string, assumeYes bool) (bool, error) {
	ok, err := terminal.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, assumeYes)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "aborted")
	}
	return ok, nil
}
