package cmd

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/go-drift/toggle/pkg/config"
	"github.com/go-drift/toggle/pkg/transition"
)

// EnvPrefix prefixes environment overrides, e.g. TOGGLECTL_LOG_LEVEL.
const EnvPrefix = "TOGGLECTL"

// Settings holds runtime settings for togglectl.
type Settings struct {
	Log        LogSettings
	Transition TransitionSettings
	Runtime    RuntimeSettings
	Widgets    WidgetSettings
}

// LogSettings configures logging.
type LogSettings struct {
	Level string
}

// TransitionSettings configures the transition scheduler.
type TransitionSettings struct {
	// Padding is added to declared transition durations before the fallback
	// timer fires.
	Padding time.Duration
}

// RuntimeSettings selects the clock.
type RuntimeSettings struct {
	// VirtualTime runs pages on virtual timers instead of the event loop.
	VirtualTime bool `mapstructure:"virtual_time"`
}

// WidgetSettings configures widgets.
type WidgetSettings struct {
	// Defaults is the path of a YAML or TOML widget defaults file.
	Defaults string
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "warn")
	v.SetDefault("transition.padding", transition.DefaultPadding)
	v.SetDefault("runtime.virtual_time", false)
	v.SetDefault("widgets.defaults", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// loadSettings reads the settings file at path, or togglectl.toml in the
// working directory when path is empty and the file exists.
func loadSettings(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("togglectl")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if s.Transition.Padding < 0 {
		return Settings{}, fmt.Errorf("transition.padding must not be negative, got %s", s.Transition.Padding)
	}
	return s, nil
}

// Logger builds the logger selected by s.
func (s Settings) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l, nil
}

// WidgetDefaults loads the defaults file and lays page defaults over it.
func (s Settings) WidgetDefaults(page config.Defaults) (config.Defaults, error) {
	out := config.Defaults{}
	if s.Widgets.Defaults != "" {
		file, err := config.LoadDefaults(s.Widgets.Defaults)
		if err != nil {
			return nil, fmt.Errorf("widgets.defaults: %w", err)
		}
		out = file
	}
	for widget, opts := range page {
		layer := maps.Clone(out[widget])
		if layer == nil {
			layer = map[string]any{}
		}
		maps.Copy(layer, opts)
		out[widget] = layer
	}
	return out, nil
}
