// File: cmd/scpsync/config_cmd.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"scpsync/internal/config"
	"scpsync/pkg/formatter"
)

func newConfigCmd(app *appContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tool-wide settings",
		Long: `Manage settings shared by every project: default transport, ssh/scp binaries,
port, identity file, known_hosts file, timeout and the project file name.
Values are stored in ` + "`~/.config/scpsync/config.yaml`" + ` and can be overridden with SCPSYNC_<KEY> environment variables.`,
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a setting",
		Long:  `Sets a setting. For example: 'scpsync config set transport ssh'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.SettingsManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Fprintf(app.Stdout, "Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get the effective value of a setting",
		Long:  `Retrieves the effective value of a setting. For example: 'scpsync config get transport'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value, exists := app.SettingsManager.GetValue(key)

			if !exists {
				return fmt.Errorf("unknown setting '%s'. Supported settings are: %s", key, strings.Join(config.SupportedKeys(), ", "))
			}
			fmt.Fprintf(app.Stdout, "%s = %v\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a stored setting, restoring its default",
		Long:  `Deletes a stored setting. For example: 'scpsync config delete port'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			deleted, err := app.SettingsManager.DeleteValue(key)

			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}

			if !deleted {
				return fmt.Errorf("setting '%s' is not stored in %s", key, app.SettingsManager.Path())
			}
			fmt.Fprintf(app.Stdout, "Setting '%s' deleted\n", key)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective value of every setting",
		Long:  `Displays every setting with its effective value and where that value comes from.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.SettingsManager.GetAllSettings()

			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			table := formatter.NewTable([]string{"KEY", "VALUE", "SOURCE"})
			for _, k := range keys {
				table.AddRow([]string{k, fmt.Sprintf("%v", settings[k]), app.SettingsManager.Source(k)})
			}

			fmt.Fprintln(app.Stdout, formatter.FormatSectionTitle("Settings ("+app.SettingsManager.Path()+")"))
			fmt.Fprintln(app.Stdout, table.String())
			return nil
		},
	}

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}
