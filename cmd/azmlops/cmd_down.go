package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/workflow"
)

// newCmdDown returns the command that tears the deployed flow down in
// reverse order.
func newCmdDown() *cobra.Command {
	var force, deleteCompute, deleteWorkspace, yes bool
	c := &cobra.Command{
		Use:           "down",
		Short:         "Tear down the deployed scoring service and its resources",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			u, err := buildWorkflowUseCase(cmd)
			if err != nil {
				return err
			}
			prompt := "Tear down the deployed service and image"
			if deleteWorkspace {
				prompt = "Tear down everything including the workspace"
			} else if deleteCompute {
				prompt = "Tear down the deployed service, image and compute targets"
			}
			if ok, err := confirmDestroy(cmd, prompt, yes); err != nil || !ok {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Hour)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workflow.down", "")
			defer func() { cleanup(err) }()

			if err := u.Down(ctx, &uc.DownInput{
				Force:           force,
				DeleteCompute:   deleteCompute,
				DeleteWorkspace: deleteWorkspace,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "down complete")
			return nil
		},
	}
	c.Flags().BoolVar(&force, "force", false, "Ignore teardown errors and keep going")
	c.Flags().BoolVar(&deleteCompute, "delete-compute", false, "Also deprovision compute targets")
	c.Flags().BoolVar(&deleteWorkspace, "delete-workspace", false, "Also deprovision the workspace scope")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
