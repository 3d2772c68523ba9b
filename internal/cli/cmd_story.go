package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newStoryCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Story management",
	}
	cmd.AddCommand(
		newStoryListCommand(deps),
		newStoryAddCommand(deps),
		newStoryGetCommand(deps),
		newStoryDeleteCommand(deps),
	)
	return cmd
}

func newStoryListCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stories",
		Args:    exactArgs(0, ""),
		RunE: func(cmd *cobra.Command, _ []string) error {
			listings, err := deps.Service.ListStories(cmd.Context())
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(listings)
		},
	}
}

func newStoryAddCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a story with its start page",
		Args:  minArgs(1, "<title>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			id, err := deps.Service.AddStory(cmd.Context(), title)
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(map[string]int64{"id": id})
		},
	}
}

func newStoryGetCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a story with all pages and choices",
		Args:  exactArgs(1, "<id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("story id", args[0])
			if err != nil {
				return err
			}
			story, err := deps.Service.GetStory(cmd.Context(), id)
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(story)
		},
	}
}

func newStoryDeleteCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a story with its pages and choices",
		Args:    exactArgs(1, "<id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("story id", args[0])
			if err != nil {
				return err
			}
			if err := deps.Service.DeleteStory(cmd.Context(), id); err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(map[string]int64{"deleted": id})
		},
	}
}
