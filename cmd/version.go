// File: cmd/version.go
package cmd

import (
	"fmt"

	"srcpress/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd prints the build information baked in at link time. The
// --short flag reduces the output to the bare version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of srcpress",
	Long:  `Display the current version information of the srcpress CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Println(v.Version)
		} else {
			fmt.Println(v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
