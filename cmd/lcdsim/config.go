// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the lcdsim configuration file model.
type config struct {
	// Bus and pin assignment handed to the driver.
	Bus       int `yaml:"bus"`
	ClockPin  int `yaml:"clock_pin"`
	DataPin   int `yaml:"data_pin"`
	SelectPin int `yaml:"select_pin"`

	// Repaint is a cron-style schedule for redrawing the clock face.
	Repaint string `yaml:"repaint"`

	// Message is drawn above the clock.
	Message string `yaml:"message"`
}

func defaultConfig() *config {
	return &config{
		Bus:       0,
		ClockPin:  2,
		DataPin:   3,
		SelectPin: 5,
		Repaint:   "@every 1s",
		Message:   "memorylcd",
	}
}

// normalize fills in zero values so partially-filled configs still work.
func (c *config) normalize() {
	if c.Repaint == "" {
		c.Repaint = "@every 1s"
	}
	if c.Message == "" {
		c.Message = "memorylcd"
	}
}

// loadConfig reads a YAML config. A missing file yields the defaults.
func loadConfig(path string) (*config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.normalize()
	return &c, nil
}
