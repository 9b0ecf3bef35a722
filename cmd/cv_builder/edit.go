package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/versions"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active version's sections",
	Long: `Edit the active version one field at a time.

  edit personal fullName "Ada Lovelace"
  edit summary "Backend engineer with ten years of..."
  edit experience add
  edit experience set ID company Acme
  edit skills set ID skills "Go, SQL, Kubernetes"
  edit education remove ID`,
}

var editPersonalCmd = &cobra.Command{
	Use:   "personal FIELD VALUE",
	Short: "Set a contact field (fullName, email, phone, location, linkedin, github, website, professionalTitle)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyEdit(cmd, editor.Edit{Section: sections.Personal, Op: editor.OpSet, Field: args[0], Value: args[1]})
	},
}

var editSummaryCmd = &cobra.Command{
	Use:   "summary TEXT",
	Short: "Replace the active version's professional summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			summary := strings.TrimSpace(args[0])
			a.store.UpdateActive(cmd.Context(), "edit:summary", versions.Patch{Summary: &summary})
			fmt.Fprintln(cmd.OutOrStdout(), "Summary updated")
			return nil
		})
	},
}

// listEditCmd builds the add/remove/set subcommands of a list section.
func listEditCmd(use string, aliases []string, section string) *cobra.Command {
	label, _ := sections.Label(section)
	c := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   "Edit " + label + " entries",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Add an empty entry at the top and print its id",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpAdd})
			},
		},
		&cobra.Command{
			Use:   "remove ID",
			Short: "Remove an entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpRemove, ID: args[0]})
			},
		},
		&cobra.Command{
			Use:   "set ID FIELD VALUE",
			Short: "Set one field of an entry",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return applyEdit(cmd, editor.Edit{Section: section, Op: editor.OpSet, ID: args[0], Field: args[1], Value: args[2]})
			},
		},
	)
	return c
}

// applyEdit runs one edit against the active version and reports the affected entry.
func applyEdit(cmd *cobra.Command, e editor.Edit) error {
	return withApp(cmd, func(a *app) error {
		var affected string
		_, err := a.store.EditData(cmd.Context(), "edit:"+e.Section, func(data types.CVData) (types.CVData, error) {
			out, id, err := editor.ApplyToData(data, e)
			affected = id
			return out, err
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch e.Op {
		case editor.OpAdd:
			fmt.Fprintln(out, affected)
		case editor.OpRemove:
			fmt.Fprintf(out, "Removed %s\n", affected)
		default:
			if affected != "" {
				fmt.Fprintf(out, "Updated %s\n", affected)
			} else {
				fmt.Fprintf(out, "Updated %s\n", e.Section)
			}
		}
		return nil
	})
}

func init() {
	editCmd.AddCommand(
		editPersonalCmd,
		editSummaryCmd,
		listEditCmd("experience", []string{"exp"}, sections.Experience),
		listEditCmd("projects", []string{"project"}, sections.Projects),
		listEditCmd("education", []string{"edu"}, sections.Education),
		listEditCmd("skills", []string{"skill"}, sections.Skills),
	)
	rootCmd.AddCommand(editCmd)
}
