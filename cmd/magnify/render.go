package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend/software"
	"golang.org/x/text/language"
)

// renderImage renders one frame of cfg and returns the presentation
// pixmap at physical resolution.
func renderImage(cfg config, logger *slog.Logger) (*image.RGBA, error) {
	opts := []software.Option{software.WithPixelRatio(cfg.Ratio)}
	if cfg.Workers > 0 {
		opts = append(opts, software.WithWorkers(cfg.Workers))
	}
	be := software.New(cfg.Width, cfg.Height, opts...)
	defer be.Close()

	scene, err := loadScene(cfg, be)
	if err != nil {
		return nil, err
	}

	m := magnify.New(magnify.WithLogger(logger))
	defer m.Close()

	p := cfg.params()
	if err := m.Render(magnify.Frame{Backend: be, Scene: scene, Params: p}); err != nil {
		return nil, err
	}

	img := be.Presentation().Image()
	if cfg.Caption {
		text := captionText(p, language.Make(cfg.Lang))
		if err := drawCaption(img, text, 14*be.PixelRatio()); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// renderFile renders cfg and writes the output files.
func renderFile(cfg config, logger *slog.Logger) error {
	img, err := renderImage(cfg, logger)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := save(img, cfg.Output, cfg.Thumbnail); err != nil {
		return err
	}
	logger.Info("wrote image", "path", cfg.Output,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
