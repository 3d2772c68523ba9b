package cli

import (
	"strings"

	"story-editor/internal/models"

	"github.com/spf13/cobra"
)

func newPageCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Page management",
	}
	cmd.AddCommand(
		newPageGetCommand(deps),
		newPageAddCommand(deps),
		newPagePatchCommand(deps),
	)
	return cmd
}

func newPageGetCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a page with its choices",
		Args:  exactArgs(1, "<id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page id", args[0])
			if err != nil {
				return err
			}
			page, err := deps.Service.GetPage(cmd.Context(), id)
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(page)
		},
	}
}

func newPageAddCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "add <story-id> <name>",
		Short: "Add an empty page to a story",
		Args:  minArgs(2, "<story-id> <name>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyID, err := parseID("story id", args[0])
			if err != nil {
				return err
			}
			id, err := deps.Service.CreatePage(cmd.Context(), storyID, strings.Join(args[1:], " "))
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(map[string]int64{"id": id})
		},
	}
}

func newPagePatchCommand(deps *commandDeps) *cobra.Command {
	var (
		name string
		body string
	)

	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Update the name and/or body of a page",
		Args:  exactArgs(1, "<id> [--name NAME] [--body BODY]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page id", args[0])
			if err != nil {
				return err
			}

			// Только явно переданные флаги попадают в патч; пустая строка допустима.
			patch := models.PagePatch{ID: id}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("body") {
				patch.Body = &body
			}
			if patch.IsEmpty() {
				return usageErrorf("page patch requires --name and/or --body")
			}

			if err := deps.Service.PatchPage(cmd.Context(), id, patch); err != nil {
				return mapCommandError(err)
			}
			page, err := deps.Service.GetPage(cmd.Context(), id)
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(page)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New page name")
	cmd.Flags().StringVar(&body, "body", "", "New page body")
	return cmd
}
