package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zfiscal/internal/cli"
	"github.com/zarlcorp/zfiscal/internal/config"
	"github.com/zarlcorp/zfiscal/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zfiscal"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		err := runCLI(ctx, os.Args[1], os.Args[2:])
		_ = app.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "zfiscal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cmd string, args []string) error {
	switch cmd {
	case "version":
		fmt.Printf("zfiscal %s\n", version)
		return nil
	case "list":
		return cli.CmdList(os.Stdout, args)
	case "forget":
		if len(args) < 1 {
			return fmt.Errorf("%w: zfiscal forget <id>", cli.ErrUsage)
		}
		return cli.CmdForget(os.Stdout, args[0])
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	switch cmd {
	case "code":
		return cli.CmdCode(os.Stdout, cfg, args)
	case "identity":
		return cli.CmdIdentity(os.Stdout, cfg, args)
	case "places":
		return cli.CmdPlaces(os.Stdout, cfg, args)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func runTUI() error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	dataDir := cli.DataDir()
	firstRun := cli.IsFirstRun(dataDir)

	m, err := tui.New(version, dataDir, cfg, config.Path(), firstRun)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
