package cmd

import (
	"fmt"
	"github.com/ValentinKolb/storagemap/cmd/item"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "smap",
		Short: "validated JSON storage map",
		Long: fmt.Sprintf(`smap (v%s)

A validated storage map on top of a plain key-value storage.
Values are stored as JSON and every read is checked against
the requested type; failures are reported by kind.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of smap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smap v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(item.ItemCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
