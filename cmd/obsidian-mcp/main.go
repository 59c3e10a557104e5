// obsidian-mcp is an MCP stdio server that exposes a note vault to LLM
// agents by delegating every operation to the external note CLI and vault
// sync binaries, with strict input validation and no shell in between.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/adapter/mcpserver"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/config"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/logger"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/infra/tracer"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/security"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/usecase/autosync"
	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/usecase/delegate"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (default: $OBSIDIAN_MCP_CONFIG)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	shutdownTracer, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return err
	}
	defer shutdownTracer(ctx)

	if err := cfg.CheckBinaries(); err != nil {
		return err
	}

	var audit *security.FileAuditLogger
	if cfg.Audit.Path != "" {
		audit, err = security.NewFileAuditLogger(cfg.Audit.Path)
		if err != nil {
			return err
		}
		defer audit.Close()
	}

	runner := delegate.NewRunner(log)

	srv, err := mcpserver.New(cfg, runner, audit, log)
	if err != nil {
		return err
	}

	if cfg.AutoSync.Schedule != "" {
		sync, err := autosync.New(cfg.AutoSync.Schedule, func(ctx context.Context) error {
			argv := delegate.BuildArgv(domain.Request{Command: domain.CmdSync}, cfg.Vault.Name)
			_, err := runner.Run(ctx, cfg.SyncTarget(), argv)
			return err
		}, log)
		if err != nil {
			return err
		}
		sync.Start()
		defer sync.Stop()
	}

	log.Info("serving MCP over stdio",
		"vault", cfg.Vault.Name,
		"cli_bin", cfg.CLI.Bin,
		"sync_bin", cfg.Sync.Bin)

	return srv.ServeStdio()
}
