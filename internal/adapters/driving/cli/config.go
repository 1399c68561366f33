package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	fileconfig "github.com/cori/Memex/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Values that parse as integers or
booleans are stored typed; everything else is stored as a string.

Recognised keys include:
  storage.backend   - "sqlite" (default) or "memory"
  storage.data_dir  - directory holding the SQLite index`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	for _, key := range fileconfig.DefaultKeys() {
		if val, ok := configStore.Get(key); ok {
			cmd.Printf("%s = %v\n", key, val)
		} else {
			cmd.Printf("%s = (not set)\n", key)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if i, err := strconv.Atoi(raw); err == nil {
		value = i
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}
