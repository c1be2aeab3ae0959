package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/pflag"

	happy "github.com/Clinery1/happy-esolang/pkg"
)

const envPrefix = "HAPPY_"

// tracerKeys are the tracers configured from the trace setting.
var tracerKeys = []string{"happy.parser", "happy.interp", "happy.cli"}

type settings struct {
	Trace    string `koanf:"trace"`
	Color    bool   `koanf:"color"`
	MaxDepth int    `koanf:"max-depth"`
	MaxSteps int    `koanf:"max-steps"`
}

func (s settings) config() happy.Config {
	return happy.Config{MaxDepth: s.MaxDepth, MaxSteps: s.MaxSteps}
}

var defaults = map[string]interface{}{
	"trace":     "error",
	"color":     true,
	"max-depth": 0,
	"max-steps": 0,
}

// loadSettings layers defaults, HAPPY_* environment variables and command
// line flags, later sources winning.
func loadSettings(flags *pflag.FlagSet) (settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return settings{}, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return settings{}, err
	}

	// Unchanged flags only fill keys no other source has set.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return settings{}, err
	}

	var s settings
	if err := k.Unmarshal("", &s); err != nil {
		return settings{}, err
	}

	if s.MaxDepth < 0 || s.MaxSteps < 0 {
		return settings{}, fmt.Errorf("limits must not be negative (max-depth %d, max-steps %d)", s.MaxDepth, s.MaxSteps)
	}

	return s, nil
}

// envKey maps HAPPY_MAX_DEPTH to max-depth.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
}

func traceLevel(name string) (tracing.TraceLevel, error) {
	switch strings.ToLower(name) {
	case "error", "":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}

	return tracing.LevelError, fmt.Errorf("unknown trace level %q", name)
}

func configureTracing(s settings) error {
	level, err := traceLevel(s.Trace)
	if err != nil {
		return err
	}

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	for _, key := range tracerKeys {
		tracing.Select(key).SetTraceLevel(level)
	}

	tracer().Debugf("settings: %+v", s)
	return nil
}
