/*
 * config.go, part of colco.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config loads the settings of the colco programs from a YAML file,
//COLCO_* environment variables and command line flags, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/colco"
	"github.com/rmera/colco/render"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	ColorPolicy string  `mapstructure:"color_policy" json:"color_policy"`
	UpAxis      string  `mapstructure:"up_axis" json:"up_axis"`
	AtomSize    float64 `mapstructure:"atom_size" json:"atom_size"`
	BondSize    float64 `mapstructure:"bond_size" json:"bond_size"`
	RenderStyle string  `mapstructure:"render_style" json:"render_style"` //overrides AtomSize and BondSize if set.
	View        string  `mapstructure:"view" json:"view"`                 //x,y,z,degrees
	Width       int     `mapstructure:"width" json:"width"`
	Height      int     `mapstructure:"height" json:"height"`
	Listen      string  `mapstructure:"listen" json:"listen"`
	LogLevel    string  `mapstructure:"log_level" json:"log_level"`
}

//flag name -> config key
var flagKeys = map[string]string{
	"color-policy": "color_policy",
	"up-axis":      "up_axis",
	"atom-size":    "atom_size",
	"bond-size":    "bond_size",
	"render-style": "render_style",
	"view":         "view",
	"width":        "width",
	"height":       "height",
	"listen":       "listen",
	"log-level":    "log_level",
}

//Flags registers the configuration flags in fs. The color policy and the axis have no default
//value: they must come from the file, the environment or the flags.
func Flags(fs *pflag.FlagSet) {
	fs.String("color-policy", "", "bond coloring: two-tone or fixed")
	fs.String("up-axis", "", "axis of the un-rotated bond mesh: y or z")
	fs.Float64("atom-size", 2.0, "atom radius multiplier")
	fs.Float64("bond-size", 0.5, "bond width multiplier")
	fs.String("render-style", "", "named sizes: "+strings.Join(render.StyleNames(), ", ")+" (overrides atom-size and bond-size)")
	fs.String("view", "", "view rotation for snapshots, as x,y,z,degrees")
	fs.Int("width", 800, "snapshot width in pixels")
	fs.Int("height", 800, "snapshot height in pixels")
	fs.String("listen", "127.0.0.1:8080", "address for the HTTP server")
	fs.String("log-level", "info", "debug, info, warn or error")
}

//Load reads the configuration. If override is not empty, it is the config file to use,
//and it must exist. Otherwise colco.yaml is looked for in the current directory and
//in $HOME/.colco, and it is fine if there is none. fs can be nil.
func Load(override string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("atom_size", 2.0)
	v.SetDefault("bond_size", 0.5)
	v.SetDefault("width", 800)
	v.SetDefault("height", 800)
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetEnvPrefix("COLCO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	//AutomaticEnv only works for keys viper already knows about.
	for _, key := range []string{"color_policy", "up_axis", "render_style", "view"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}
	if override != "" {
		v.SetConfigFile(override)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", override, err)
		}
	} else {
		v.SetConfigName("colco")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".colco"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notfound viper.ConfigFileNotFoundError
			if !errors.As(err, &notfound) {
				return nil, err
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

//ParserOptions returns the color policy and axis for colco.NewParser. Missing or invalid
//values are an error wrapping colco.ErrConfig.
func (c *Config) ParserOptions() (colco.ColorPolicy, colco.Axis, error) {
	policy, err := colco.ParseColorPolicy(c.ColorPolicy)
	if err != nil {
		return 0, 0, fmt.Errorf("color_policy: %w", err)
	}
	up, err := colco.ParseAxis(c.UpAxis)
	if err != nil {
		return 0, 0, fmt.Errorf("up_axis: %w", err)
	}
	return policy, up, nil
}

//Parser returns a parser configured with ParserOptions.
func (c *Config) Parser() (*colco.Parser, error) {
	policy, up, err := c.ParserOptions()
	if err != nil {
		return nil, err
	}
	return colco.NewParser(policy, up)
}

//RenderSettings returns the snapshot settings, with a white background. An unknown
//style or an invalid view are errors.
func (c *Config) RenderSettings() (render.Settings, error) {
	view, err := render.ParseView(c.View)
	if err != nil {
		return render.Settings{}, fmt.Errorf("view: %w", err)
	}
	rs := render.Settings{
		Width:      c.Width,
		Height:     c.Height,
		AtomSize:   c.AtomSize,
		BondSize:   c.BondSize,
		View:       view,
		Background: colco.Color{1, 1, 1},
	}
	if c.RenderStyle != "" {
		st, err := render.StyleNamed(c.RenderStyle)
		if err != nil {
			return render.Settings{}, fmt.Errorf("render_style: %w", err)
		}
		rs = rs.WithStyle(st)
	}
	return rs, nil
}

//SlogLevel returns the log level, info if LogLevel is not a known level.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
