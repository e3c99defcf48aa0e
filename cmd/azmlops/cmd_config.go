package main

import (
	"fmt"

	"github.com/mlopsworks/azmlops/models/cfgaml"
	"github.com/spf13/cobra"
)

// newCmdConfig returns a command that reads and shows the current configuration.
func newCmdConfig() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "config",
		Short: "Read and validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = cfgaml.DefaultConfigPath
			}
			cfg, err := cfgaml.Load(file)
			if err != nil {
				return err
			}
			// Print a concise summary to stdout
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d driver=%s workspace=%s location=%s computes=%d model=%s image=%s service=%s target=%s\n",
				cfg.Version, cfg.Driver, cfg.Workspace.Name, cfg.Workspace.Location, len(cfg.Computes), cfg.Model.Name, cfg.Image.Name, cfg.Service.Name, cfg.Service.Target)
			return nil
		},
	}
	c.Flags().StringVarP(&file, "file", "f", cfgaml.DefaultConfigPath, "Path to azmlops.yml")
	return c
}
