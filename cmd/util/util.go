package util

import (
	"fmt"
	"github.com/cachehub/cachehub/lib/backend"
	"github.com/cachehub/cachehub/lib/backend/memory"
	"github.com/cachehub/cachehub/lib/hub"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupHubFlags adds the common hub flags to a command
func SetupHubFlags(cmd *cobra.Command) {
	key := "stores"
	cmd.PersistentFlags().String(key, "", WrapString("Comma-separated list of named in-memory stores to create. Operations without --store use the default fallback store"))

	key = "store"
	cmd.PersistentFlags().String(key, "", WrapString("Name of the store to operate on (empty = default fallback store)"))

	key = "watch"
	cmd.PersistentFlags().Bool(key, false, WrapString("Print every notification fan-out event triggered by the operation"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("cachehub")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetLogLevel retrieves the configured log level
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetStoreName retrieves the configured target store name
func GetStoreName() string {
	return viper.GetString("store")
}

// WatchEnabled reports whether notification printing is requested
func WatchEnabled() bool {
	return viper.GetBool("watch")
}

// NewHub builds a hub over a fresh in-memory backend for every configured
// store name
func NewHub() (hub.IHub[string], error) {
	backends := map[string]backend.IBackend[string]{}
	for _, name := range strings.Split(viper.GetString("stores"), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		backends[name] = memory.New[string](nil)
	}

	h, err := hub.New(hub.Config[string]{Backends: backends})
	if err != nil {
		return nil, fmt.Errorf("failed to create hub: %w", err)
	}
	return h, nil
}
