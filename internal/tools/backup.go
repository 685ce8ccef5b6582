package tools

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

const backupCommandTimeout = 60 * time.Second

func registerBackupTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.config.backup",
		Description: "Dump the running configuration ('write terminal') and return it with a content hash for drift detection.",
		InputSchema: hostArgSchema(nil),
	}, handleConfigBackup)
}

func handleConfigBackup(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, "write terminal", backupCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	sum := sha256.Sum256([]byte(res.Stdout))
	hash := hex.EncodeToString(sum[:])

	data := map[string]any{
		"config":             res.Stdout,
		"sha256":             hash,
		"truncated":          res.Truncated,
		"commands_executed":  ec.commands,
	}
	result := domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("captured %d bytes of running config, sha256 %s", len(res.Stdout), hash[:12])),
	}, nil)
	result.Meta["config_sha256"] = hash
	return result
}
