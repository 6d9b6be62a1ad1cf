package kv

import (
	"fmt"
	"github.com/cachehub/cachehub/cmd/util"
	"github.com/cachehub/cachehub/lib/hub"
	"github.com/cachehub/cachehub/lib/logging"
	"github.com/spf13/cobra"
)

var (
	cacheHub hub.IHub[string]

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform cache operations against an in-process hub",
		PersistentPreRunE: setupHub,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common hub flags to the KV command
	util.SetupHubFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(setMultipleCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(publishCmd)
	KeyValueCommands.AddCommand(listCmd)
	KeyValueCommands.AddCommand(publishAllCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(clearCmd)
	KeyValueCommands.AddCommand(metricsCmd)
}

// setupHub creates and starts the in-process hub
func setupHub(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	logging.InitLoggers(util.GetLogLevel())

	var err error
	cacheHub, err = util.NewHub()
	if err != nil {
		return err
	}

	if util.WatchEnabled() {
		// Registered before Start - subscriptions do not require a
		// started hub
		if _, err := cacheHub.Subscribe(printEvent); err != nil {
			return err
		}
	}

	return cacheHub.Start()
}

// printEvent is the --watch listener
func printEvent(key string, value *string, storeName string) {
	if storeName == "" {
		storeName = "(default)"
	}
	if value == nil {
		fmt.Printf("event | store=%s key=%s value=<nil>\n", storeName, key)
	} else {
		fmt.Printf("event | store=%s key=%s value=%s\n", storeName, key, *value)
	}
}
