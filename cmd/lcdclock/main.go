// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcdclock prints a clock to an HD44780 display on a PCF8574 I²C backpack,
// refreshing once a minute. With --emulate it drives an in-process emulator
// and renders the frame to the terminal instead of touching hardware; the
// emulated frame can also be watched as a PNG with --http.
package main

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/hd44780i2c"
	"periph.io/x/devices/v3/hd44780i2c/lcdsink"
	"periph.io/x/host/v3"
)

var (
	busName  = kingpin.Flag("bus", "I²C bus name, empty for the first available.").Default("").String()
	address  = kingpin.Flag("address", "I²C address of the backpack.").Default("39").Uint16()
	rows     = kingpin.Flag("rows", "Physical display rows.").Default("4").Int()
	cols     = kingpin.Flag("cols", "Display columns.").Default("20").Int()
	tz       = kingpin.Flag("tz", "Time zone for the clock.").Default("Local").String()
	emulate  = kingpin.Flag("emulate", "Use the lcdsink emulator instead of hardware.").Bool()
	httpAddr = kingpin.Flag("http", "Listen address for the emulator PNG view, e.g. :8080.").Default("").String()
	debug    = kingpin.Flag("debug", "Turn on debug logging.").Bool()
)

func main() {
	kingpin.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	var bus i2c.Bus
	var sink *lcdsink.Dev
	if *emulate {
		sink = lcdsink.New(*rows, *cols)
		bus = sink
	} else {
		if _, err := host.Init(); err != nil {
			log.WithError(err).Fatal("Unable to initialize periph")
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			log.WithError(err).Fatal("Unable to open I²C bus")
		}
		defer b.Close()
		bus = b
	}

	dev, err := hd44780i2c.New(bus, *address, &hd44780i2c.Opts{
		Rows:      *rows,
		Cols:      *cols,
		Backlight: true,
	})
	if err != nil {
		log.WithError(err).Fatal("Unable to initialize display")
	}
	log.Infof("Driving %s", dev)

	if *httpAddr != "" && sink != nil {
		go func() {
			log.Infof("Serving emulator frames on http://%s", *httpAddr)
			if err := http.ListenAndServe(*httpAddr, sink); err != nil {
				log.WithError(err).Error("HTTP server stopped")
			}
		}()
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.WithError(err).Fatal("Unknown time zone")
	}

	if *rows > 1 {
		if err := dev.SetCursor(*rows-1, 0); err != nil {
			log.WithError(err).Fatal("Write failed")
		}
		if _, err := dev.WriteString("HD44780 is cool!"); err != nil {
			log.WithError(err).Fatal("Write failed")
		}
	}

	for {
		now := time.Now().In(loc)
		if err := dev.SetCursor(0, 1); err != nil {
			log.WithError(err).Fatal("Write failed")
		}
		if _, err := dev.WriteString(now.Format("01/02/06 03:04 PM")); err != nil {
			log.WithError(err).Fatal("Write failed")
		}
		log.Debugf("Refreshed at %s", now.Format(time.RFC3339))
		if sink != nil {
			if err := sink.Render(); err != nil {
				log.WithError(err).Error("Render failed")
			}
		}
		// Wake just past the top of the next minute.
		time.Sleep(time.Until(now.Truncate(time.Minute).Add(time.Minute)))
	}
}
