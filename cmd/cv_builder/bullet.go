package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

var (
	composeAction string
	composeScope  string
	composeMetric string
	composeDryRun bool
)

var bulletCmd = &cobra.Command{
	Use:   "bullet",
	Short: "Edit achievement bullets of experience and project entries",
	Long: `Edit the achievement statements of an experience or project entry.

  bullet add experience ID "Cut p99 latency by 40%"
  bullet set projects ID 0 "Rewrote billing in Go"
  bullet remove experience ID 1
  bullet compose experience ID --action Led --scope "migration to GKE" --metric "zero downtime"`,
}

// bulletSection maps the section argument, accepting singular forms.
func bulletSection(arg string) (string, error) {
	switch arg {
	case "experience", "exp":
		return sections.Experience, nil
	case "projects", "project":
		return sections.Projects, nil
	}
	return "", fmt.Errorf("bullets belong to experience or projects, not %q", arg)
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid bullet index %q", arg)
	}
	return i, nil
}

var bulletAddCmd = &cobra.Command{
	Use:   "add SECTION ID TEXT",
	Short: "Append a bullet",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := bulletSection(args[0])
		if err != nil {
			return err
		}
		return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpAddBullet, ID: args[1], Value: args[2]})
	},
}

var bulletSetCmd = &cobra.Command{
	Use:   "set SECTION ID INDEX TEXT",
	Short: "Replace the bullet at INDEX (0-based)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := bulletSection(args[0])
		if err != nil {
			return err
		}
		idx, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpSetBullet, ID: args[1], Index: idx, Value: args[3]})
	},
}

var bulletRemoveCmd = &cobra.Command{
	Use:   "remove SECTION ID INDEX",
	Short: "Remove the bullet at INDEX (0-based)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := bulletSection(args[0])
		if err != nil {
			return err
		}
		idx, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpRemoveBullet, ID: args[1], Index: idx})
	},
}

var bulletComposeCmd = &cobra.Command{
	Use:   "compose SECTION ID",
	Short: "Draft a bullet with the model from an action, a scope and a metric, and append it",
	Args:  cobra.ExactArgs(2),
	RunE:  runBulletCompose,
}

func runBulletCompose(cmd *cobra.Command, args []string) error {
	section, err := bulletSection(args[0])
	if err != nil {
		return err
	}
	req := types.ComposeBulletRequest{Action: composeAction, Scope: composeScope, Metric: composeMetric, Section: section, ID: args[1]}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("--action and --scope are required: %w", err)
	}

	return withApp(cmd, func(a *app) error {
		target := editor.Edit{Section: section, Op: editor.OpAddBullet, ID: req.ID}
		// Fail on a bad target before spending a model call.
		if _, _, err := editor.ApplyToData(a.store.Active().Data, target); err != nil {
			return err
		}

		gen, err := a.generator(cmd.Context())
		if err != nil {
			return err
		}
		bullet, err := editor.ComposeBullet(cmd.Context(), gen, req.Action, req.Scope, req.Metric)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bullet)
		if composeDryRun {
			return nil
		}

		_, err = a.store.EditData(cmd.Context(), "compose:"+section, func(data types.CVData) (types.CVData, error) {
			target.Value = bullet
			out, _, err := editor.ApplyToData(data, target)
			return out, err
		})
		return err
	})
}

func init() {
	bulletComposeCmd.Flags().StringVar(&composeAction, "action", "", "Action verb, e.g. Led (required)")
	bulletComposeCmd.Flags().StringVar(&composeScope, "scope", "", "What was done (required)")
	bulletComposeCmd.Flags().StringVar(&composeMetric, "metric", "", "Result or metric")
	bulletComposeCmd.Flags().BoolVar(&composeDryRun, "dry-run", false, "Print the bullet without saving it")

	bulletCmd.AddCommand(bulletAddCmd, bulletSetCmd, bulletRemoveCmd, bulletComposeCmd)
	rootCmd.AddCommand(bulletCmd)
}
