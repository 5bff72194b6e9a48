package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/config"
	"github.com/taabirhq/taabir/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file to the taabir home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", h.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if h.ConfigExists() {
				path = h.ConfigPath()
			}
		}
		cm, err := config.NewManager(path)
		if err != nil {
			return err
		}
		return printConfig(cm)
	},
}

func printConfig(cm *config.Manager) error {
	cfg := *cm.Get()
	// Never echo a resolved API key.
	cfg.LLM.APIKey = "(redacted)"
	return api.Output(cfg)
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
