// Command aosgwd runs the OmniSwitch remote management gateway.
package main

import (
	"github.com/0xEkho/ALE-OmniSwitch-MCP/cmd"
)

func main() {
	cmd.Execute()
}
