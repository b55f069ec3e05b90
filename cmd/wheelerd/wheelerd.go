package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wheeler-host/wheeler/internal/config"
	"github.com/wheeler-host/wheeler/internal/configpaths"
	"github.com/wheeler-host/wheeler/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	cli, ctx := parseCLI(os.Args[1:])

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	rawLogger, rawCloser := openRawLogger(cli.Log, logger)
	if rawCloser != nil {
		closers = append(closers, rawCloser)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	// Flush log files before a fatal exit; FatalIfErrorf does not return.
	for _, c := range closers {
		_ = c.Close()
	}
	ctx.FatalIfErrorf(err)
}

// parseCLI builds the command grammar and parses args against it, with
// configuration layered in from JSON/YAML/TOML candidate files. Flags and
// environment override file values.
func parseCLI(args []string) (*config.CLI, *kong.Context) {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userConfigPath(args))

	cli := &config.CLI{}
	parser, err := kong.New(cli,
		kong.Name("wheelerd"),
		kong.Description("Wheeler virtual gamepad bridge"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	return cli, ctx
}

// userConfigPath resolves the explicit config file before the full parse,
// since the candidate paths feed into the parser itself. The last --config
// flag wins over WHEELER_CONFIG.
func userConfigPath(args []string) string {
	path := os.Getenv("WHEELER_CONFIG")
	for i, a := range args {
		switch {
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
		case a == "--config" && i+1 < len(args):
			path = args[i+1]
		}
	}
	return path
}

// openRawLogger decides where raw packet and report dumps go: an explicit
// file wins, trace level falls back to stdout, anything else is silent.
func openRawLogger(cfg config.Log, logger *slog.Logger) (log.RawLogger, io.Closer) {
	if cfg.RawFile != "" {
		f, err := os.OpenFile(cfg.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cfg.RawFile, "error", err)
			return log.NewRaw(nil), nil
		}
		return log.NewRaw(f), f
	}
	if cfg.Level == "trace" {
		return log.NewRaw(os.Stdout), nil
	}
	return log.NewRaw(nil), nil
}
