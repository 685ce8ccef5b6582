package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/0xEkho/ALE-OmniSwitch-MCP/cmd.Version=v1.0.0"
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "aosgwd",
	Short: "aosgwd — OmniSwitch remote management gateway",
	Long:  "aosgwd: a JSON-RPC/SSE gateway exposing a fixed catalog of read-mostly OmniSwitch CLI tools over SSH, with command policy enforcement and zone-scoped credential resolution.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $AOSGWD_CONFIG or config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(knownHostsCmd())
	rootCmd.AddCommand(versionCmd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aosgwd %s\n", Version)
		},
	}
}

// resolveConfigPath follows --config flag -> AOSGWD_CONFIG env var ->
// config.yaml default.
func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if v := os.Getenv("AOSGWD_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}

// Execute runs the root cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
