package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
)

func configCmd() *cobra.Command {
	c := &cobra.Command{Use: "config", Short: "Inspect gateway configuration"}
	c.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Load and validate the configured policy, zones, and device inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigCheck()
		},
	})
	return c
}

func runConfigCheck() error {
	path := resolveConfigPath()
	fmt.Printf("Config:   %s\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Printf("  hash:                %s\n", cfg.Hash())

	if _, err := cfg.CompiledPolicy(); err != nil {
		fmt.Printf("  policy:              INVALID (%s)\n", err)
		return err
	}
	fmt.Println("  policy:              OK")

	zones := cfg.ZoneMap()
	fmt.Printf("  zone credential entries: %d\n", len(zones.Zones))
	fmt.Printf("  devices configured:  %d\n", len(cfg.DeviceList()))
	fmt.Printf("  jump hosts:          %d\n", len(cfg.JumpHostsByName()))
	fmt.Printf("  server listen:       %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  known_hosts file:    %s\n", config.ExpandHome(cfg.SSH.KnownHostsFile))

	return nil
}
