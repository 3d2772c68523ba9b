package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newChoiceCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "choice",
		Short: "Choice management",
	}
	cmd.AddCommand(newChoiceAddCommand(deps))
	return cmd
}

func newChoiceAddCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "add <page-id> <target-page-id> <text>",
		Short: "Add a choice leading from one page to another",
		Args:  minArgs(3, "<page-id> <target-page-id> <text>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page id", args[0])
			if err != nil {
				return err
			}
			targetID, err := parseID("target page id", args[1])
			if err != nil {
				return err
			}
			choice, err := deps.Service.CreateChoice(cmd.Context(), pageID, targetID, strings.Join(args[2:], " "))
			if err != nil {
				return mapCommandError(err)
			}
			return deps.printJSON(choice)
		},
	}
}
