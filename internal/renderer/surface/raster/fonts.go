package raster

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/opentype"

	"github.com/dshills/canvasterm/internal/renderer/surface"
)

// Every family resolves to Go Mono; the grid only needs a fixed-pitch font.
var monoTTF = map[[2]bool][]byte{
	{false, false}: gomono.TTF,
	{true, false}:  gomonobold.TTF,
	{false, true}:  gomonoitalic.TTF,
	{true, true}:   gomonobolditalic.TTF,
}

// faceCache keeps one face per font string and one parsed font per variant.
type faceCache struct {
	fonts map[[2]bool]*opentype.Font
	faces map[string]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		fonts: make(map[[2]bool]*opentype.Font),
		faces: make(map[string]font.Face),
	}
}

func (c *faceCache) lookup(spec string) (font.Face, error) {
	if face, ok := c.faces[spec]; ok {
		return face, nil
	}

	f, err := surface.ParseFont(spec)
	if err != nil {
		return nil, err
	}

	variant := [2]bool{f.Bold, f.Italic}
	parsed, ok := c.fonts[variant]
	if !ok {
		parsed, err = opentype.Parse(monoTTF[variant])
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		c.fonts[variant] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	c.faces[spec] = face
	return face, nil
}

func (c *faceCache) close() error {
	var errs []error
	for spec, face := range c.faces {
		if err := face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.faces, spec)
	}
	return errors.Join(errs...)
}
