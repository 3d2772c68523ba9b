package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  exactArgs(0, ""),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Migrate == nil {
				return asExitError(ExitCodeGeneric, fmt.Errorf("migrations are not available"))
			}
			if err := deps.Migrate(cmd.Context()); err != nil {
				return mapCommandError(err)
			}
			_, err := fmt.Fprintln(deps.out, "schema is up to date")
			return err
		},
	}
}
