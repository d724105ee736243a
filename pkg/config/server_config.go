// SPDX-License-Identifier: GPL-2.0-or-later
/*
 * Copyright (C) 2026 SCANOSS.COM
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 2 of the License, or
 * (at your option) any later version.
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package config loads the dependency graph tool configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

const (
	defaultDriver      = "postgres"
	defaultMinSeverity = "low"
)

// ServerConfig is the configuration for the dependency graph tools.
type ServerConfig struct {
	App struct {
		Name  string `env:"APP_NAME"`
		Debug bool   `env:"APP_DEBUG"`
	}
	Logging struct {
		DynamicLevel string `env:"LOG_LEVEL"` // debug, info, warn, error
	}
	Database struct {
		Driver  string `env:"DB_DRIVER"`
		Host    string `env:"DB_HOST"`
		User    string `env:"DB_USER"`
		Passwd  string `env:"DB_PASSWD"`
		Schema  string `env:"DB_SCHEMA"`
		SslMode string `env:"DB_SSL_MODE"` // enable/disable
		Dsn     string `env:"DB_DSN"`
		Trace   bool   `env:"DB_TRACE"`
	}
	Review struct {
		MinSeverity    string            `env:"REVIEW_MIN_SEVERITY"`    // low, moderate, high, critical
		DeniedLicenses string            `env:"REVIEW_DENIED_LICENSES"` // comma separated SPDX identifiers
		Requirements   map[string]string // purl name -> semver requirement
	}
}

// NewServerConfig loads all config options and returns a struct containing them.
func NewServerConfig(feeders []config.Feeder) (*ServerConfig, error) {
	cfg := ServerConfig{}
	setServerConfigDefaults(&cfg)
	c := config.New()
	for _, f := range feeders {
		c.AddFeeder(f)
	}
	c.AddFeeder(feeder.Env{})
	c.AddStruct(&cfg)
	if err := c.Feed(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Review.MinSeverity = strings.ToLower(strings.TrimSpace(cfg.Review.MinSeverity))
	return &cfg, nil
}

// FeedersFromPath picks the config feeder matching the file extension of the given path.
func FeedersFromPath(path string) []config.Feeder {
	switch {
	case len(path) == 0:
		return nil
	case strings.HasSuffix(path, ".env"):
		return []config.Feeder{feeder.DotEnv{Path: path}}
	default:
		return []config.Feeder{feeder.Json{Path: path}}
	}
}

// DatabaseDSN builds the connection string for the configured database driver.
func (c *ServerConfig) DatabaseDSN() string {
	if len(c.Database.Dsn) > 0 {
		return c.Database.Dsn
	}
	return fmt.Sprintf("%s://%s:%s@%s/%s?sslmode=%s", c.Database.Driver,
		c.Database.User, c.Database.Passwd, c.Database.Host, c.Database.Schema, c.Database.SslMode)
}

// DeniedLicenseList splits the configured denied licenses into a list.
func (c *ServerConfig) DeniedLicenseList() []string {
	var licenses []string
	for _, l := range strings.Split(c.Review.DeniedLicenses, ",") {
		if l = strings.TrimSpace(l); len(l) > 0 {
			licenses = append(licenses, l)
		}
	}
	return licenses
}

// setServerConfigDefaults attempts to set reasonable defaults for the server config.
func setServerConfigDefaults(cfg *ServerConfig) {
	cfg.App.Name = "SCANOSS Dependency Graph Tools"
	cfg.App.Debug = false
	cfg.Logging.DynamicLevel = "info"
	cfg.Database.Driver = defaultDriver
	cfg.Database.Host = "localhost"
	cfg.Database.User = "scanoss"
	cfg.Database.Schema = "scanoss"
	cfg.Database.SslMode = "disable"
	cfg.Database.Trace = false
	cfg.Review.MinSeverity = defaultMinSeverity
}
