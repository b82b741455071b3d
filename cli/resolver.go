package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/aq/ason"
)

// resolve is a [kong.ConfigurationLoader] for config files written in ASON.
//
// The document must be an object whose keys are flag names, with either
// hyphens or underscores as word separators. Any other document, including
// one that does not parse, yields an empty configuration.
func resolve(r io.Reader) (kong.Resolver, error) {
	doc, err := ason.ParseReader(r)
	if err != nil || doc.Kind != ason.KindObject {
		return config{}, nil
	}

	cfg := make(config, len(doc.Fields))
	for _, f := range doc.Fields {
		cfg[strings.ReplaceAll(f.Key, "_", "-")] = flagValue(f.Value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}

// flagValue converts a document value to what kong decodes flags from.
// Numbers become strings.
func flagValue(v *ason.Value) any {
	switch n := v.Native().(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		if v.Kind != ason.KindList {
			return n
		}

		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = flagValue(item)
		}

		return items
	default:
		return n
	}
}
