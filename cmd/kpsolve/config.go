package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Configuration keys. Command line flags carry the same names.
const (
	keyConfig       = "config"
	keyTraceAdapter = "trace-adapter"
	keyTrace        = "trace"
	keyLimit        = "limit"
	keyRelaxation   = "relaxation"
	keyPowerBound   = "power-bound"
	keyColor        = "color"
	keyMetrics      = "metrics"
)

var defaults = map[string]interface{}{
	keyTraceAdapter: "go",
	keyTrace:        "error",
	keyLimit:        0,
	keyRelaxation:   true,
	keyPowerBound:   false,
	keyColor:        true,
	keyMetrics:      false,
}

// loadConfig builds the configuration from defaults, an optional YAML file
// named by flag --config, and the flags set on the command line, in
// increasing order of precedence.
func loadConfig(flags *pflag.FlagSet) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if name, _ := flags.GetString(keyConfig); name != "" {
		raw, err := file.Provider(name).ReadBytes()
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", name, err)
		}
		values := map[string]interface{}{}
		if err = yaml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("config file %s: %w", name, err)
		}
		if err = k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, err
		}
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, err
	}
	return k, nil
}

// setupTracing installs the configured trace adapter and sets the trace level
// for all of the module's tracers.
func setupTracing(k *koanf.Koanf) error {
	switch adapter := k.String(keyTraceAdapter); adapter {
	case "go":
		gtrace.CoreTracer = gologadapter.New()
	case "logrus":
		gtrace.CoreTracer = logrusadapter.New()
	default:
		return fmt.Errorf("unknown trace adapter %q", adapter)
	}
	level, err := traceLevel(k.String(keyTrace))
	if err != nil {
		return err
	}
	gtrace.CoreTracer.SetTraceLevel(level)
	for _, key := range []string{"knapsack", "knapsack.solver", "knapsack.cli"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

func traceLevel(s string) (tracing.TraceLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", s)
}
