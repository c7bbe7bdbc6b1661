package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print fit version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func runVersion(_ *cobra.Command, _ []string) {
	if versionShort {
		fmt.Println(version.Short())
		return
	}
	fmt.Printf("fit %s\n", version.Full())
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
