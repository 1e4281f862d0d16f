package cliargs

import (
	"strings"

	"github.com/goliatone/go-args/args"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/tidwall/sjson"
)

// CLIArgs implements a koanf provider over the options declared on an args.Parser.
type CLIArgs struct {
	parser *args.Parser
	delim  string
	cb     func(key string) string
}

// Provider returns a koanf provider that exposes the resolved value of every
// option declared on p. The key of an option is its first --long alias (or its
// first alias) with the flag prefix trimmed, e.g. `--db.host` becomes `db.host`.
// The nesting hierarchy of keys is defined by delim.
//
// cb is an optional callback that transforms keys, for instance to replace
// dashes with the delimiter. If the callback returns an empty string the option
// is ignored.
//
// Options that are absent and optional are left out. Any resolution error is
// returned as is.
func Provider(p *args.Parser, delim string, cb func(key string) string) *CLIArgs {
	return &CLIArgs{
		parser: p,
		delim:  delim,
		cb:     cb,
	}
}

// Read returns the resolved values as a nested map.
func (c *CLIArgs) Read() (map[string]any, error) {
	_, flat, err := c.values()
	if err != nil {
		return nil, err
	}
	return confmap.Provider(flat, c.delim).Read()
}

// ReadBytes returns the resolved values as a JSON document.
func (c *CLIArgs) ReadBytes() ([]byte, error) {
	keys, flat, err := c.values()
	if err != nil {
		return nil, err
	}

	out := "{}"
	for _, key := range keys {
		path := key
		if c.delim != "" {
			path = strings.Replace(key, c.delim, ".", -1)
		}
		if out, err = sjson.Set(out, path, flat[key]); err != nil {
			return nil, err
		}
	}
	return []byte(out), nil
}

// values resolves every option and returns the keys in declaration order.
func (c *CLIArgs) values() ([]string, map[string]any, error) {
	out := make(map[string]any)
	if c.parser == nil {
		return nil, out, nil
	}

	var keys []string
	for _, d := range c.parser.Definitions() {
		key := Key(d.Names())
		if c.cb != nil {
			key = c.cb(key)
		}
		if key == "" {
			continue
		}

		v, ok, err := d.Any()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if _, dup := out[key]; !dup {
			keys = append(keys, key)
		}
		out[key] = v
	}
	return keys, out, nil
}

// Key derives the configuration key of an option from its aliases.
func Key(names []string) string {
	for _, n := range names {
		if strings.HasPrefix(n, "--") && len(n) > 2 {
			return n[2:]
		}
	}
	if len(names) == 0 {
		return ""
	}
	return strings.TrimLeft(names[0], "-")
}
