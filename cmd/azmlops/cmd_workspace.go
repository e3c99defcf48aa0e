package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/workspace"
)

func newCmdWorkspace() *cobra.Command {
	c := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdWorkspaceResolve())
	c.AddCommand(newCmdWorkspaceList())
	c.AddCommand(newCmdWorkspaceGet())
	c.AddCommand(newCmdWorkspaceStatus())
	c.AddCommand(newCmdWorkspaceDelete())
	return c
}

// workspaceID returns the explicit argument or the single configured
// workspace.
func workspaceID(ctx context.Context, u *uc.UseCase, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wss, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(wss) != 1 {
		return "", fmt.Errorf("workspace id required: found %d workspaces", len(wss))
	}
	return wss[0].ID, nil
}

func newCmdWorkspaceResolve() *cobra.Command {
	return &cobra.Command{Use: "resolve [id]", Short: "Resolve (provision or reuse) the workspace", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildWorkspaceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Minute)
		defer cancel()
		id, err := workspaceID(ctx, u, args)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "workspace.resolve", id)
		defer func() { cleanup(err) }()
		out, err := u.Resolve(ctx, &uc.ResolveInput{WorkspaceID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdWorkspaceList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List workspaces", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildWorkspaceUseCase(cmd)
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

func newCmdWorkspaceGet() *cobra.Command {
	return &cobra.Command{Use: "get [id]", Short: "Get a workspace", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildWorkspaceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := workspaceID(ctx, u, args)
		if err != nil {
			return err
		}
		ws, err := u.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ws)
	}}
}

func newCmdWorkspaceStatus() *cobra.Command {
	return &cobra.Command{Use: "status [id]", Short: "Show cloud status of a workspace", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildWorkspaceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		id, err := workspaceID(ctx, u, args)
		if err != nil {
			return err
		}
		out, err := u.Status(ctx, &uc.StatusInput{WorkspaceID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdWorkspaceDelete() *cobra.Command {
	var force, yes bool
	c := &cobra.Command{Use: "delete [id]", Short: "Deprovision a workspace", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildWorkspaceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Minute)
		defer cancel()
		id, err := workspaceID(ctx, u, args)
		if err != nil {
			return err
		}
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Deprovision workspace %s", id), yes); err != nil || !ok {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "workspace.delete", id)
		defer func() { cleanup(err) }()
		if err := u.Delete(ctx, &uc.DeleteInput{WorkspaceID: id, Force: force}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	}}
	c.Flags().BoolVar(&force, "force", false, "Delete the whole resource group")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
