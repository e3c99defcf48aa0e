package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/workflow"
)

// newCmdUp returns the command that runs the whole flow: workspace, compute,
// model, image, service, smoke test.
func newCmdUp() *cobra.Command {
	var overwrite, noSmoke bool
	var data string
	c := &cobra.Command{
		Use:           "up",
		Short:         "Provision everything and deploy the scoring service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			u, err := buildWorkflowUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Hour)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workflow.up", "")
			defer func() { cleanup(err) }()

			in := &uc.UpInput{Overwrite: overwrite}
			if !noSmoke {
				payload, err := invokePayload(cmd, data)
				if err != nil {
					return err
				}
				in.SmokePayload = payload
			}
			out, err := u.Up(ctx, in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	c.Flags().BoolVar(&overwrite, "overwrite", false, "Redeploy a live service instead of reusing it")
	c.Flags().BoolVar(&noSmoke, "no-smoke", false, "Skip the final smoke test request")
	c.Flags().StringVarP(&data, "data", "d", "", "Smoke test body: inline JSON, @file, or '-' for stdin (default sample payload)")
	return c
}
