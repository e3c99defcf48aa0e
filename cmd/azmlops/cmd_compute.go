package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/compute"
)

func newCmdCompute() *cobra.Command {
	c := &cobra.Command{
		Use:   "compute",
		Short: "Compute target related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdComputeCreate())
	c.AddCommand(newCmdComputeList())
	c.AddCommand(newCmdComputeGet())
	c.AddCommand(newCmdComputeStatus())
	c.AddCommand(newCmdComputeDelete())
	return c
}

// computeTargetID returns the explicit argument or the single configured
// compute target.
func computeTargetID(ctx context.Context, u *uc.UseCase, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cts, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(cts) != 1 {
		return "", fmt.Errorf("compute target id required: found %d compute targets", len(cts))
	}
	return cts[0].ID, nil
}

func newCmdComputeCreate() *cobra.Command {
	return &cobra.Command{Use: "create [id]", Short: "Provision (or reuse) a compute target", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildComputeUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Minute)
		defer cancel()
		id, err := computeTargetID(ctx, u, args)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "compute.create", id)
		defer func() { cleanup(err) }()
		out, err := u.Create(ctx, &uc.CreateInput{ComputeTargetID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdComputeList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List compute targets", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildComputeUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		items, err := u.List(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, it := range items {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdComputeGet() *cobra.Command {
	return &cobra.Command{Use: "get [id]", Short: "Get a compute target", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildComputeUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := computeTargetID(ctx, u, args)
		if err != nil {
			return err
		}
		ct, err := u.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ct)
	}}
}

func newCmdComputeStatus() *cobra.Command {
	return &cobra.Command{Use: "status [id]", Short: "Show cloud status of a compute target", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildComputeUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		id, err := computeTargetID(ctx, u, args)
		if err != nil {
			return err
		}
		out, err := u.Status(ctx, &uc.StatusInput{ComputeTargetID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdComputeDelete() *cobra.Command {
	var force, yes bool
	c := &cobra.Command{Use: "delete [id]", Short: "Deprovision a compute target", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildComputeUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Minute)
		defer cancel()
		id, err := computeTargetID(ctx, u, args)
		if err != nil {
			return err
		}
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Deprovision compute target %s", id), yes); err != nil || !ok {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "compute.delete", id)
		defer func() { cleanup(err) }()
		if err := u.Delete(ctx, &uc.DeleteInput{ComputeTargetID: id, Force: force}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	}}
	c.Flags().BoolVar(&force, "force", false, "Also delete the underlying cluster of an attached aks target")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
