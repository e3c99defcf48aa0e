package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	uc "github.com/mlopsworks/azmlops/usecase/image"
)

func newCmdImage() *cobra.Command {
	c := &cobra.Command{
		Use:   "image",
		Short: "Scoring image related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdImageBuild())
	c.AddCommand(newCmdImageList())
	c.AddCommand(newCmdImageGet())
	c.AddCommand(newCmdImageDelete())
	return c
}

// imageID returns the explicit argument or the single configured image.
func imageID(ctx context.Context, u *uc.UseCase, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	images, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(images) != 1 {
		return "", fmt.Errorf("image id required: found %d images", len(images))
	}
	return images[0].ID, nil
}

func newCmdImageBuild() *cobra.Command {
	var modelID string
	var noPush bool
	c := &cobra.Command{Use: "build [id]", Short: "Build and push the scoring image", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildImageUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()
		id, err := imageID(ctx, u, args)
		if err != nil {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "image.build", id)
		defer func() { cleanup(err) }()
		out, err := u.Build(ctx, &uc.BuildInput{ImageID: id, ModelID: modelID, NoPush: noPush})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVar(&modelID, "model", "", "Model record ID to bundle (defaults to the image's recorded model)")
	c.Flags().BoolVar(&noPush, "no-push", false, "Assemble the image without pushing it")
	return c
}

func newCmdImageList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List images", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildImageUseCase(cmd)
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

func newCmdImageGet() *cobra.Command {
	return &cobra.Command{Use: "get [id]", Short: "Get an image", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildImageUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		id, err := imageID(ctx, u, args)
		if err != nil {
			return err
		}
		img, err := u.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(img)
	}}
}

func newCmdImageDelete() *cobra.Command {
	var keepRecord, yes bool
	c := &cobra.Command{Use: "delete [id]", Short: "Delete a pushed image", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) (err error) {
		u, err := buildImageUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()
		id, err := imageID(ctx, u, args)
		if err != nil {
			return err
		}
		if ok, err := confirmDestroy(cmd, fmt.Sprintf("Delete image %s", id), yes); err != nil || !ok {
			return err
		}
		ctx, cleanup := withCmdRunLogger(ctx, "image.delete", id)
		defer func() { cleanup(err) }()
		if err := u.Delete(ctx, &uc.DeleteInput{ImageID: id, KeepRecord: keepRecord}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	}}
	c.Flags().BoolVar(&keepRecord, "keep-record", false, "Remove only the pushed tag, keep the record")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return c
}
