package cmd

import (
	"fmt"
	"github.com/cachehub/cachehub/cmd/kv"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "cachehub",
		Short: "in-process cache orchestration over named key-value stores",
		Long: fmt.Sprintf(`cachehub (v%s)

An in-process orchestration layer that unifies reads and writes across
named key-value backends behind one surface and notifies subscribed
listeners whenever a value is written or (re)fetched.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cachehub",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cachehub v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
