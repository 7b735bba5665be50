package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
)

func newInstancesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Manage the instance registry",
	}
	cmd.AddCommand(newInstancesListCmd(a))
	cmd.AddCommand(newInstancesAddCmd(a))
	return cmd
}

func newInstancesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := a.store.List(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tINSTALLED\tLAUNCHES\tDIR")
			for _, inst := range list {
				count, err := a.store.LaunchCount(ctx, inst.Title)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%t\t%d\t%s\n", inst.Title, inst.Installed, count, inst.Dir)
			}
			return w.Flush()
		},
	}
}

func newInstancesAddCmd(a *app) *cobra.Command {
	var (
		installed bool
		customJar string
	)

	cmd := &cobra.Command{
		Use:   "add <title> <dir>",
		Short: "Register or update an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if err := paths.ValidateName(title); err != nil {
				return err
			}

			dir, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}

			inst := &instance.Instance{
				Title:     title,
				Dir:       dir,
				Installed: installed,
				CustomJar: customJar,
			}
			if err := a.store.Commit(cmd.Context(), inst); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s at %s\n", title, dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&installed, "installed", true, "mark the instance as installed")
	cmd.Flags().StringVar(&customJar, "custom-jar", "", "main jar overriding the version jar")
	return cmd
}
