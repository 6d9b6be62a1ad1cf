package kv

import (
	"context"
	"fmt"
	"github.com/cachehub/cachehub/cmd/util"
	"github.com/cachehub/cachehub/lib/backend"
	"github.com/cachehub/cachehub/lib/hub"
	"github.com/spf13/cobra"
	"os"
	"strings"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Caches the value for a key and notifies listeners",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if _, err := cacheHub.CacheItem(context.Background(), key, &value, util.GetStoreName()); err != nil {
				return err
			}
			fmt.Println("cached successfully")
			return nil
		},
	}
	setMultipleCmd = &cobra.Command{
		Use:   "setm [key=value] [key=value] ...",
		Short: "Caches multiple key-value pairs in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]hub.Item[string], 0, len(args))
			for _, arg := range args {
				key, value, found := strings.Cut(arg, "=")
				if !found {
					return fmt.Errorf("invalid item %q, expected key=value", arg)
				}
				v := value
				items = append(items, hub.Item[string]{
					Key:       key,
					Value:     &v,
					StoreName: util.GetStoreName(),
				})
			}
			if err := cacheHub.CacheMultiple(context.Background(), items); err != nil {
				return err
			}
			fmt.Printf("cached %d item(s)\n", len(items))
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key] [fallback-value]",
		Short: "Reads the value for a key, caching the optional fallback value on a miss",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var fallback hub.Fallback[string]
			if len(args) == 2 {
				fallbackValue := args[1]
				fallback = func(_ context.Context) (*string, error) {
					return &fallbackValue, nil
				}
			}

			value, err := cacheHub.GetItem(context.Background(), key, util.GetStoreName(), fallback)
			if err != nil {
				return err
			}
			if value == nil {
				fmt.Printf("key=%s, found=false\n", key)
			} else {
				fmt.Printf("key=%s, value=%s\n", key, *value)
			}
			return nil
		},
	}
	publishCmd = &cobra.Command{
		Use:   "publish [key] [fallback-value]",
		Short: "Reads the value for a key and notifies listeners even on a cache hit",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var fallback hub.Fallback[string]
			if len(args) == 2 {
				fallbackValue := args[1]
				fallback = func(_ context.Context) (*string, error) {
					return &fallbackValue, nil
				}
			}

			if err := cacheHub.PublishItem(context.Background(), key, util.GetStoreName(), fallback); err != nil {
				return err
			}
			fmt.Println("published successfully")
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists the items of the selected store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cacheHub.ListItems(context.Background(), listOptions(cmd), nil)
			if err != nil {
				return err
			}
			for _, entry := range res.Data {
				fmt.Printf("%s=%s\n", entry.Key, entry.Value)
			}
			fmt.Printf("page %d/%d, %d result(s) total\n", res.Page, res.TotalPages, res.TotalResults)
			return nil
		},
	}
	publishAllCmd = &cobra.Command{
		Use:   "publish-all",
		Short: "Refetches the selected store and notifies listeners with the key literal \"all\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cacheHub.PublishItems(context.Background(), listOptions(cmd), nil); err != nil {
				return err
			}
			fmt.Println("published successfully")
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Removes a key and notifies listeners with a nil value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := cacheHub.RemoveItem(context.Background(), key, util.GetStoreName()); err != nil {
				return err
			}
			fmt.Println("removed successfully")
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Clears the selected store (--store all clears every clearable store)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cacheHub.ClearItems(context.Background(), util.GetStoreName()); err != nil {
				return err
			}
			fmt.Println("cleared successfully")
			return nil
		},
	}
	metricsCmd = &cobra.Command{
		Use:   "metrics",
		Short: "Prints the hub metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hub.WriteMetrics(os.Stdout)
			return nil
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{listCmd, publishAllCmd} {
		cmd.Flags().Int("page", 0, util.WrapString("Page to return (1-based, 0 = first page)"))
		cmd.Flags().Int("per-page", 0, util.WrapString("Page size (0 = everything on one page)"))
		cmd.Flags().String("order-by", "key", util.WrapString("Sort order (key or -key)"))
	}
}

// listOptions reads the list flags of a command into backend.ListOptions
func listOptions(cmd *cobra.Command) backend.ListOptions {
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	orderBy, _ := cmd.Flags().GetString("order-by")

	return backend.ListOptions{
		StoreName:      util.GetStoreName(),
		Page:           page,
		ResultsPerPage: perPage,
		OrderBy:        orderBy,
	}
}
