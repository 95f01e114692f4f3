package item

import (
	"github.com/ValentinKolb/storagemap/cmd/util"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/storage/metered"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/spf13/cobra"
)

var (
	conf  *common.Config
	store *metered.Storage
	sm    *storagemap.StorageMap

	// ItemCommands represents the item command group
	ItemCommands = &cobra.Command{
		Use:               "item",
		Short:             "Read and write JSON items through the storage map",
		PersistentPreRunE: setupStorageMap,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add storage flags to the item command
	util.SetupStorageFlags(ItemCommands)

	// Add subcommands
	ItemCommands.AddCommand(setCmd)
	ItemCommands.AddCommand(getCmd)
	ItemCommands.AddCommand(delCmd)
	ItemCommands.AddCommand(clearCmd)
	ItemCommands.AddCommand(perfTestCmd)
}

// setupStorageMap opens the configured storage and binds the storage map to it
func setupStorageMap(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	if conf, err = util.GetConfig(); err != nil {
		return err
	}
	if err = common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}

	// from here on errors come from the storage, not from the invocation
	cmd.SilenceUsage = true

	if store, err = util.OpenStorage(conf); err != nil {
		return err
	}
	sm = storagemap.New(store)
	return nil
}

// withStorage runs fn and releases the storage afterward, printing the metrics if requested
func withStorage(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if conf.PrintMetrics {
				store.WritePrometheus(cmd.OutOrStdout())
			}
			if cerr := store.Close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}
