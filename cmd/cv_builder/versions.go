package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/versions"
)

var duplicateName string

var versionsCmd = &cobra.Command{
	Use:     "versions",
	Aliases: []string{"version"},
	Short:   "Manage CV versions",
	Long:    "List, create, duplicate, delete and switch between named CV versions, and control which sections the active version shows and in what order.",
}

var versionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List versions, marking the active one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			st := a.store.State()
			a.printer.PrintVersions(st.Versions, st.ActiveID)
			return nil
		})
	},
}

var versionsInfoCmd = &cobra.Command{
	Use:   "info [ID]",
	Short: "Show a version's sections and contents (default: active)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			v := a.store.Active()
			if len(args) == 1 {
				found, ok := versions.Find(a.store.State().Versions, args[0])
				if !ok {
					return fmt.Errorf("%w: %s", versions.ErrVersionNotFound, args[0])
				}
				v = found
			}
			a.printer.PrintVersion(v)
			return nil
		})
	},
}

var versionsCreateCmd = &cobra.Command{
	Use:   "create [NAME]",
	Short: "Create an empty version and make it active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			v := a.store.Create(cmd.Context(), strings.Join(args, ""))
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", v.Name, v.ID)
			return nil
		})
	},
}

var versionsDuplicateCmd = &cobra.Command{
	Use:   "duplicate [ID]",
	Short: "Copy a version (default: active) and make the copy active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			source := a.store.Active().ID
			if len(args) == 1 {
				source = args[0]
			}
			v, err := a.store.Duplicate(cmd.Context(), source, duplicateName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", v.Name, v.ID)
			return nil
		})
	},
}

var versionsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s; active is now %q\n", args[0], a.store.Active().Name)
			return nil
		})
	},
}

var versionsUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Make a version active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if err := a.store.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active version: %q\n", a.store.Active().Name)
			return nil
		})
	},
}

var versionsRenameCmd = &cobra.Command{
	Use:   "rename NAME",
	Short: "Rename the active version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			name := args[0]
			v := a.store.UpdateActive(cmd.Context(), "rename", versions.Patch{Name: &name})
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %q\n", v.Name)
			return nil
		})
	},
}

func visibilityCmd(use, short string, hidden bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SECTION",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if _, err := a.store.SetHidden(cmd.Context(), args[0], hidden); err != nil {
					return err
				}
				state := "shown"
				if hidden {
					state = "hidden"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], state)
				return nil
			})
		},
	}
}

var versionsMoveCmd = &cobra.Command{
	Use:   "move SECTION up|down|DELTA",
	Short: "Move a section in the active version's order",
	Long:  "Move a section up or down. DELTA is a signed number of positions; pass negative numbers after -- (e.g. move skills -- -2).",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := parseDelta(args[1])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			v, err := a.store.MoveSection(cmd.Context(), args[0], delta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order: %s\n", strings.Join(v.SectionOrder, ", "))
			return nil
		})
	},
}

func parseDelta(s string) (int, error) {
	switch strings.ToLower(s) {
	case "up":
		return -1, nil
	case "down":
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid move %q: want up, down or a non-zero number", s)
	}
	return n, nil
}

func init() {
	versionsDuplicateCmd.Flags().StringVar(&duplicateName, "name", "", "Name of the copy (default: \"<source> (Copy)\")")

	versionsCmd.AddCommand(
		versionsListCmd,
		versionsInfoCmd,
		versionsCreateCmd,
		versionsDuplicateCmd,
		versionsDeleteCmd,
		versionsUseCmd,
		versionsRenameCmd,
		visibilityCmd("hide", "Hide a section on the active version", true),
		visibilityCmd("show", "Show a hidden section on the active version", false),
		versionsMoveCmd,
	)
	rootCmd.AddCommand(versionsCmd)
}
