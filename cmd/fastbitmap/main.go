package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel string           `help:"Log level: debug, info, warn or error." enum:"debug,info,warn,error" default:"info" env:"FASTBITMAP_LOG_LEVEL"`
	Version  kong.VersionFlag `short:"v" help:"Print version information and quit."`
}

// CLI is the fastbitmap command line.
type CLI struct {
	Globals

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve MCP requests over stdin/stdout (default)."`
	Info   InfoCmd   `cmd:"" help:"Print an image's size and pixel format."`
	Get    GetCmd    `cmd:"" help:"Print the color of one pixel."`
	Set    SetCmd    `cmd:"" help:"Set the color of one pixel and save the result."`
	Invert InvertCmd `cmd:"" help:"Invert every pixel and save the result."`
}

// newLogger returns a text logger on w at the named level. Logs go to stderr
// because stdout carries the MCP protocol.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("fastbitmap"),
		kong.Description("Direct pixel access for 8, 24 and 32 bpp images."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("fastbitmap %s (built %s, commit %s)", Version, BuildTime, GitCommit)},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	logger, err := newLogger(os.Stderr, cli.LogLevel)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	logger.Debug("starting", "version", Version, "build_time", BuildTime, "commit", GitCommit, "command", kctx.Command())

	if err := kctx.Run(logger); err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
