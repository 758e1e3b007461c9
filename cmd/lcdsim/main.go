// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcdsim drives a Sharp LS027B7DH01 memory LCD, or a terminal simulation of
// one, with a continuously refreshed clock face.
//
// Without -hw the panel is simulated: frames leave the driver through the
// same DMA-style pipeline, but land in an ANSI rendering on stdout instead
// of a panel.
package main

import (
	"flag"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/robfig/cron/v3"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"

	"periph.io/x/memorylcd/dma"
	"periph.io/x/memorylcd/ls027b7dh01"
	"periph.io/x/memorylcd/termview"
)

func main() {
	configPath := flag.String("config", "lcdsim.yaml", "path to config file")
	hw := flag.Bool("hw", false, "drive real hardware through the host SPI bus")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("lcdsim: %v", err)
	}
	opts := &ls027b7dh01.Opts{
		BusID:     cfg.Bus,
		ClockPin:  cfg.ClockPin,
		DataPin:   cfg.DataPin,
		SelectPin: cfg.SelectPin,
	}

	var dev *ls027b7dh01.Dev
	if *hw {
		if _, err := host.Init(); err != nil {
			log.Fatalf("lcdsim: %v", err)
		}
		dev, err = ls027b7dh01.Init(opts)
	} else {
		view := termview.New(&termview.Opts{})
		defer view.Halt()
		dev, err = ls027b7dh01.New(
			&viewPort{view: view},
			&gpiotest.Pin{N: "CS"},
			dma.New(dma.NumChannels),
			ls027b7dh01.Timers{},
			opts)
	}
	if err != nil {
		log.Fatalf("lcdsim: %v", err)
	}

	face, err := clockFace()
	if err != nil {
		log.Fatalf("lcdsim: %v", err)
	}
	paint := func() {
		if err := drawClock(dev, face, cfg.Message); err != nil {
			log.Printf("lcdsim: draw: %v", err)
		}
	}
	paint()

	c := cron.New()
	if _, err := c.AddFunc(cfg.Repaint, paint); err != nil {
		log.Fatalf("lcdsim: bad repaint schedule %q: %v", cfg.Repaint, err)
	}
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	c.Stop()
}

func clockFace() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
}

// drawClock paints the message and the current time and publishes the
// frame through the display.Drawer path.
func drawClock(dev *ls027b7dh01.Dev, f *truetype.Font, msg string) error {
	b := dev.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 28}))
	dc.DrawStringAnchored(msg, float64(b.Dx())/2, float64(b.Dy())/3, 0.5, 0.5)

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 64}))
	dc.DrawStringAnchored(time.Now().Format("15:04:05"), float64(b.Dx())/2, 2*float64(b.Dy())/3, 0.5, 0.5)

	return dev.Draw(b, dc.Image(), image.Point{})
}
