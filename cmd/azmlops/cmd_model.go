package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/registry"
)

func newCmdModel() *cobra.Command {
	c := &cobra.Command{
		Use:   "model",
		Short: "Model registry related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdModelRegister())
	c.AddCommand(newCmdModelList())
	c.AddCommand(newCmdModelGet())
	c.AddCommand(newCmdModelVersions())
	c.AddCommand(newCmdModelUnregister())
	c.AddCommand(newCmdModelDelete())
	return c
}

// modelID returns the explicit argument or the single configured model.
func modelID(ctx context.Context, u *uc.UseCase, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	models, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(models) != 1 {
		return "", fmt.Errorf("model id required: found %d models", len(models))
	}
	return models[0].ID, nil
}

func newCmdModelRegister() *cobra.Command {
	return &cobra.Command{Use: "register [id]", Short: "Register the model artifact", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildRegistryUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		id, err := modelID(ctx, u, args)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "model.register", id)
		defer func() { cleanup(err) }()
		out, err := u.Register(ctx, &uc.RegisterInput{ModelID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdModelList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List models", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildRegistryUseCase(cmd)
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

func newCmdModelGet() *cobra.Command {
	return &cobra.Command{Use: "get [id]", Short: "Get a model", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildRegistryUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := modelID(ctx, u, args)
		if err != nil {
			return err
		}
		m, err := u.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}}
}

func newCmdModelVersions() *cobra.Command {
	return &cobra.Command{Use: "versions <name>", Short: "List registered versions of a model name", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildRegistryUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		items, err := u.ListVersions(ctx, args[0])
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

func newCmdModelUnregister() *cobra.Command {
	var yes bool
	c := &cobra.Command{Use: "unregister [id]", Short: "Remove all registered versions of a model", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildRegistryUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := modelID(ctx, u, args)
		if err != nil {
			return err
		}
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Unregister model %s", id), yes); err != nil || !ok {
			return err
		}
		if err := u.Unregister(ctx, &uc.UnregisterInput{ModelID: id}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "unregistered %s\n", id)
		return nil
	}}
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}

func newCmdModelDelete() *cobra.Command {
	var yes bool
	c := &cobra.Command{Use: "delete <id>", Short: "Delete a model record", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildRegistryUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Delete model %s", args[0]), yes); err != nil || !ok {
			return err
		}
		if err := u.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	}}
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
