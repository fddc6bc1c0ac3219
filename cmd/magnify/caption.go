package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	tslang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/magnify"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ellipsis = "…"

// captionText describes the lens in one line, with numbers formatted for
// lang.
func captionText(p magnify.Params, lang language.Tag) string {
	pr := message.NewPrinter(lang)
	if !p.Active() {
		return pr.Sprintf("lens off")
	}
	aa := "off"
	if p.Antialias {
		aa = "on"
	}
	return pr.Sprintf("zoom %.1fx  exponent %.0f  radius %.0f  outline %.0f %s  fxaa %s",
		p.Zoom, p.Exponent, p.Radius, p.OutlineThickness, p.OutlineColor.Hex(), aa)
}

// drawCaption writes text over a translucent band along the bottom edge
// of dst. size is the font size in pixels. Text wider than dst is cut
// and ends in an ellipsis.
func drawCaption(dst *image.RGBA, text string, size float64) error {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("caption face: %w", err)
	}
	defer face.Close()

	b := dst.Bounds()
	m := face.Metrics()
	pad := int(size / 2)

	shaper, err := newCaptionShaper(goregular.TTF)
	if err != nil {
		return err
	}
	text = shaper.fit(text, size, float64(b.Dx()-2*pad))

	band := image.Rect(b.Min.X, b.Max.Y-(m.Ascent+m.Descent).Ceil()-2*pad, b.Max.X, b.Max.Y)
	draw.Draw(dst, band, image.NewUniform(color.RGBA{0, 0, 0, 0xA0}), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+pad, b.Max.Y-pad-m.Descent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// captionShaper measures caption runs with HarfBuzz shaping, so kerning
// is counted the same way a shaped renderer would lay the text out.
type captionShaper struct {
	font *gotext.Font
	hb   shaping.HarfbuzzShaper
}

func newCaptionShaper(ttf []byte) (*captionShaper, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse caption font: %w", err)
	}
	return &captionShaper{font: face.Font}, nil
}

// advance returns the width of text at size pixels.
func (s *captionShaper) advance(text string, size float64) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	out := s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(s.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    tslang.Latin,
		Language:  tslang.NewLanguage("en"),
	})
	var adv fixed.Int26_6
	for _, g := range out.Glyphs {
		adv += g.Advance
	}
	return float64(adv) / 64
}

// fit shortens text until it is at most width pixels wide.
func (s *captionShaper) fit(text string, size, width float64) string {
	if s.advance(text, size) <= width {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		if t := string(runes[:n]) + ellipsis; s.advance(t, size) <= width {
			return t
		}
	}
	return ""
}
