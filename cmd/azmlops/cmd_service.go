package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/service"
)

// defaultInvokePayload is posted when `service invoke` is run without --data.
const defaultInvokePayload = `{"x": 987.654}`

func newCmdService() *cobra.Command {
	c := &cobra.Command{
		Use:   "service",
		Short: "Scoring service related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdServiceDeploy())
	c.AddCommand(newCmdServiceList())
	c.AddCommand(newCmdServiceGet())
	c.AddCommand(newCmdServiceStatus())
	c.AddCommand(newCmdServiceKeys())
	c.AddCommand(newCmdServiceInvoke())
	c.AddCommand(newCmdServiceDelete())
	return c
}

// serviceID returns the explicit argument or the single configured service.
func serviceID(ctx context.Context, u *uc.UseCase, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	services, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(services) != 1 {
		return "", fmt.Errorf("service id required: found %d services", len(services))
	}
	return services[0].ID, nil
}

func newCmdServiceDeploy() *cobra.Command {
	var overwrite bool
	c := &cobra.Command{Use: "deploy [id]", Short: "Deploy the scoring service", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Minute)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "service.deploy", id)
		defer func() { cleanup(err) }()
		out, err := u.Deploy(ctx, &uc.DeployInput{ServiceID: id, Overwrite: overwrite})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().BoolVar(&overwrite, "overwrite", false, "Replace a live service instead of reusing it")
	return c
}

func newCmdServiceList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List services", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
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

func newCmdServiceGet() *cobra.Command {
	return &cobra.Command{Use: "get [id]", Short: "Get a service", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		svc, err := u.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(svc)
	}}
}

func newCmdServiceStatus() *cobra.Command {
	return &cobra.Command{Use: "status [id]", Short: "Show cloud status of a service", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		out, err := u.Status(ctx, &uc.StatusInput{ServiceID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

func newCmdServiceKeys() *cobra.Command {
	return &cobra.Command{Use: "keys [id]", Short: "Show access keys of a service", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		out, err := u.Keys(ctx, &uc.KeysInput{ServiceID: id})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
}

// invokePayload reads the request body from --data: inline JSON, @file, or
// '-' for stdin. Empty selects the default sample payload.
func invokePayload(cmd *cobra.Command, data string) ([]byte, error) {
	switch {
	case data == "":
		return []byte(defaultInvokePayload), nil
	case data == "-":
		return io.ReadAll(cmd.InOrStdin())
	case data[0] == '@':
		return os.ReadFile(data[1:])
	}
	return []byte(data), nil
}

func newCmdServiceInvoke() *cobra.Command {
	var data string
	c := &cobra.Command{Use: "invoke [id]", Short: "Post a payload to the scoring endpoint", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		payload, err := invokePayload(cmd, data)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "service.invoke", id)
		defer func() { cleanup(err) }()
		out, err := u.Invoke(ctx, &uc.InvokeInput{ServiceID: id, Payload: payload})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&data, "data", "d", "", "Request body: inline JSON, @file, or '-' for stdin (default sample payload)")
	return c
}

func newCmdServiceDelete() *cobra.Command {
	var force, keepRecord, yes bool
	c := &cobra.Command{Use: "delete [id]", Short: "Tear down a deployed service", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Minute)
		defer cancel()
		id, err := serviceID(ctx, u, args)
		if err != nil {
			return err
		}
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Tear down service %s", id), yes); err != nil || !ok {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "service.delete", id)
		defer func() { cleanup(err) }()
		if err := u.Delete(ctx, &uc.DeleteInput{ServiceID: id, Force: force, KeepRecord: keepRecord}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	}}
	c.Flags().BoolVar(&force, "force", false, "Ignore teardown errors from the target")
	c.Flags().BoolVar(&keepRecord, "keep-record", false, "Remove only the deployed workload, keep the record")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
