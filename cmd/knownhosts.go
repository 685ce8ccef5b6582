package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
)

func knownHostsCmd() *cobra.Command {
	c := &cobra.Command{Use: "knownhosts", Short: "Inspect the configured known_hosts file"}
	c.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configured known_hosts file path and its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKnownHostsShow()
		},
	})
	return c
}

func runKnownHostsShow() error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := config.ExpandHome(cfg.SSH.KnownHostsFile)
	if path == "" {
		fmt.Println("no known_hosts file configured (strict_host_key_checking relies on the default path)")
		return nil
	}
	fmt.Printf("known_hosts file: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("(file does not exist yet)")
			return nil
		}
		return fmt.Errorf("read known_hosts: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
