package item

import (
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/storagemap/cmd/util"
	"github.com/ValentinKolb/storagemap/lib/result"
	"github.com/ValentinKolb/storagemap/lib/storagemap"
	"github.com/ValentinKolb/storagemap/lib/validate"
	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [json]",
		Short: "Sets the value for a key",
		Long:  "Sets the value for a key. The value must be a JSON document, e.g. 42, '\"text\"' or '{\"a\":1}'.",
		Args:  cobra.ExactArgs(2),
		RunE: withStorage(func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value any
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				return fmt.Errorf("value must be valid JSON: %w", err)
			}

			if _, err := result.Unwrap(sm.SetItem(key, value)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "set successfully")
			return nil
		}),
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: withStorage(func(cmd *cobra.Command, args []string) error {
			key := args[0]

			typeName, _ := cmd.Flags().GetString("type")
			v, err := validate.ByName(typeName)
			if err != nil {
				return err
			}

			value, err := result.Unwrap(storagemap.GetItem(sm, key, v))
			if err != nil {
				return err
			}

			b, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, value=%s\n", key, b)
			return nil
		}),
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: withStorage(func(cmd *cobra.Command, args []string) error {
			if _, err := result.Unwrap(sm.RemoveItem(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "delete successfully")
			return nil
		}),
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes every item from the storage",
		Args:  cobra.NoArgs,
		RunE: withStorage(func(cmd *cobra.Command, _ []string) error {
			if _, err := result.Unwrap(sm.Clear()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "clear successfully")
			return nil
		}),
	}
)

func init() {
	key := "type"
	getCmd.Flags().String(key, "any", util.WrapString("The JSON type the value must have (any, string, number, bool, object, array, null)"))
}
