// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/stmio/chip8/internal/chip8"
	"github.com/stmio/chip8/internal/cli"
	"github.com/stmio/chip8/internal/config"
	"github.com/stmio/chip8/internal/host"
	"github.com/stmio/chip8/internal/loader"
	"github.com/stmio/chip8/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		logger.Fatal(err.Error())
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8", log.String("version", buildinfo.Version(version, commit, date)))
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.Load(opts.ROM)
	if err != nil {
		return err
	}

	var chipOpts []chip8.Option
	if opts.LegacyShift {
		chipOpts = append(chipOpts, chip8.WithLegacyShift())
	}

	chip := chip8.New(opts.ClockHz, chipOpts...)
	if err := chip.Load(rom); err != nil {
		return err
	}

	logger.Info("Running ROM",
		log.String("file", opts.ROM),
		log.Int("bytes", len(rom)),
		log.Int("clock_hz", opts.ClockHz),
	)

	h, err := host.New(host.Config{
		Chip:   chip,
		Logger: logger,
		Title:  "chip8 - " + opts.ROM,
		Scale:  opts.Scale,
		Mute:   opts.Mute,
		Trace:  opts.Trace,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = h.Close()
	}()

	return h.Run(ctx)
}
