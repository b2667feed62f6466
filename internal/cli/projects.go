package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/tasklog/internal/config"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage the project selector list",
	Long:    `Manage the projects offered by the selector (~/.tasklog/projects.yaml).`,
}

var projectsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	RunE:    runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add ID NAME...",
	Short: "Add or rename a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectsAdd,
}

var projectsRemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectsRemove,
}

func init() {
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsRemoveCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	idx, err := config.LoadProjectsIndex()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	out := cmd.OutOrStdout()

	if len(idx.Projects) == 0 {
		fmt.Fprintf(out, "No projects. Run %s to add one.\n", styleCommand.Render("'tasklog projects add ID NAME'"))
		return nil
	}

	for _, p := range idx.Projects {
		fmt.Fprintf(out, "  %s  %s\n", styleValue.Width(12).Render(p.ProjectID), p.Name)
	}
	return nil
}

func runProjectsAdd(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := config.RegisterProject(id, name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s project %s\n", styleSuccess.Render("Added"), id)
	return nil
}

func runProjectsRemove(cmd *cobra.Command, args []string) error {
	removed, err := config.UnregisterProject(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("project %q not found", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s project %s\n", styleSuccess.Render("Removed"), args[0])
	return nil
}
