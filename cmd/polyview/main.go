// SPDX-License-Identifier: GPL-2.0-or-later

// polyview renders a raw polygon model stream to a PNG.
package main

import (
	"flag"
	"log"
	"os"

	"gopoly/fix"
	"gopoly/g3"
	"gopoly/ggrast"
	"gopoly/interp"
	"gopoly/math/vec"
	"gopoly/palette"
)

var (
	in      = flag.String("in", "", "raw polygon model data")
	out     = flag.String("out", "model.png", "output image")
	size    = flag.Int("size", 512, "image size in pixels")
	dist    = flag.Float64("dist", 40, "view distance")
	palFile = flag.String("palette", "", "optional 768 byte rgb palette")
)

func main() {
	flag.Parse()
	if *in == "" {
		log.Fatalf("no input model, use -in")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	var pal *palette.Palette
	if *palFile != "" {
		raw, err := os.ReadFile(*palFile)
		if err != nil {
			log.Fatalf("read %s: %v", *palFile, err)
		}
		pal, err = palette.New(raw)
		if err != nil {
			log.Fatalf("load palette: %v", err)
		}
	}

	// color conversion happens at draw time via DrawParams.Palette,
	// so InitModel must not rewrite the stored colors as well
	highest, err := interp.InitModel(data, 0, nil)
	if err != nil {
		log.Fatalf("invalid model: %v", err)
	}
	log.Printf("highest texture index %d", highest)

	canvas := ggrast.New(*size, *size, pal)
	view := g3.NewViewer(vec.Identity, vec.Vec3{Z: -fix.FromFloat32(float32(*dist))})
	err = interp.DrawModel(data, 0, interp.DrawParams{
		Canvas:   canvas,
		View:     view,
		Textures: make([]g3.Texture, int(highest)+1),
		Points:   make([]g3.Point, g3.MaxInterpPoints),
		Light:    g3.LRGB{R: fix.One, G: fix.One, B: fix.One},
		Palette:  pal,
	})
	if err != nil {
		log.Fatalf("draw: %v", err)
	}
	if err := canvas.Context().SavePNG(*out); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
}
