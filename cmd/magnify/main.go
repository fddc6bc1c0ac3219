// Command magnify renders a scene through a magnifying lens to an image.
//
// The lens is described by flags or by a YAML or TOML config file:
//
//	magnify -x 300 -y 200 -zoom 3 -output lens.png
//	magnify -config lens.yaml -watch
//
// With -watch the image is rendered again whenever the config file
// changes, which makes tuning the falloff exponent and outline quick.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/magnify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("magnify: %v", err)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, opts, err := resolve(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if opts.verbose {
		magnify.SetLogger(logger)
	}

	if err := renderFile(cfg, logger); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	if opts.config == "" {
		return errors.New("-watch needs -config")
	}

	return watchConfig(ctx, opts.config, func() error {
		cfg, _, err := resolve(args, io.Discard)
		if err != nil {
			return err
		}
		return renderFile(cfg, logger)
	}, logger)
}
