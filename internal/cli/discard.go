package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventform/internal/draft"
)

func newDiscardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discard",
		Short: "Throw away the open draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveDraftPath(cmd)
			if err != nil {
				return err
			}
			if err := draft.Remove(path); err != nil {
				return err
			}
			fmt.Println("Draft discarded.")
			return nil
		},
	}
	return cmd
}
