package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/biddoc-ops/biddoc/internal/config"
)

var initConfigOutput string

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default configuration file",
	RunE:  initConfig,
}

func init() {
	initConfigCmd.Flags().StringVarP(&initConfigOutput, "output", "o", "config.yml", "destination path")
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initConfigOutput); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", initConfigOutput)
	}

	data, err := yaml.Marshal(config.GetDefaults())
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}

	if err := os.WriteFile(initConfigOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Default configuration written to %s\n", initConfigOutput)
	return nil
}
