package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the assocrows release, overridable with -ldflags "-X".
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/assocrows"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the assocrows version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "assocrows v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
