// Package config loads viewer/CLI settings from defaults, an optional
// hsviz_config.yaml, and HSVIZ_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "hsviz"
	ConfigName     = "hsviz_config"
	ConfigPathEnv  = "HSVIZ_CFG_PATH"
	DefaultBackend = "http://localhost:5000"
)

type Config struct {
	BackendURL     string
	Timeout        time.Duration
	Algorithm      string
	RedCount       int
	BlueCount      int
	LogLevel       string
	Dark           bool
	HoverThreshold float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", DefaultBackend)
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.algorithm", "default")
	v.SetDefault("points.red", 7)
	v.SetDefault("points.blue", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.dark", true)
	v.SetDefault("ui.hover_threshold_px", 10.0)
}

// New returns a viper instance with defaults and env binding; no file is read.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. An explicit path must exist; otherwise
// hsviz_config.yaml is looked up under HSVIZ_CFG_PATH (or ".") and may be
// absent. Flags bound in fs override everything else.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		alt := os.Getenv(ConfigPathEnv)
		if alt == "" {
			alt = "."
		}
		v.AddConfigPath(alt)
		v.SetConfigName(ConfigName)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}
	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}
	return FromViper(v)
}

// flagKeys maps config keys to the CLI flags that may override them.
var flagKeys = map[string]string{
	"backend.url":       "backend",
	"backend.algorithm": "algorithm",
	"backend.timeout":   "timeout",
	"log.level":         "log-level",
}

// AttachFlags registers the shared override flags on fs. Flags the user
// leaves unset do not override file or env values.
func AttachFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to "+ConfigName+".yaml")
	fs.String("backend", DefaultBackend, "computation backend base URL")
	fs.String("algorithm", "default", "cut algorithm: default, ilp, mlp, brute-force")
	fs.Duration("timeout", 10*time.Second, "per-request backend timeout")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
}

// FromViper converts a populated viper instance and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		BackendURL:     strings.TrimRight(v.GetString("backend.url"), "/"),
		Timeout:        v.GetDuration("backend.timeout"),
		Algorithm:      v.GetString("backend.algorithm"),
		RedCount:       v.GetInt("points.red"),
		BlueCount:      v.GetInt("points.blue"),
		LogLevel:       v.GetString("log.level"),
		Dark:           v.GetBool("ui.dark"),
		HoverThreshold: v.GetFloat64("ui.hover_threshold_px"),
	}
	if c.BackendURL == "" {
		return nil, errors.New("backend.url must not be empty")
	}
	if c.Timeout <= 0 {
		return nil, errors.Errorf("backend.timeout must be positive, got %s", c.Timeout)
	}
	if c.HoverThreshold <= 0 {
		return nil, errors.Errorf("ui.hover_threshold_px must be positive, got %v", c.HoverThreshold)
	}
	return c, nil
}
