package args

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/copystructure"
)

type optionKind int

const (
	kindValue optionKind = iota
	kindFlag
	kindEnum
)

// Attr configures a declaration.
type Attr func(*attrs)

type attrs struct {
	usage  string
	envVar string
	hidden bool
}

// Usage sets the help text shown below the option's aliases.
func Usage(text string) Attr {
	return func(a *attrs) {
		a.usage = text
	}
}

// EnvVar names an environment variable consulted when no alias is present.
func EnvVar(name string) Attr {
	return func(a *attrs) {
		a.envVar = name
	}
}

// Hidden removes the option from generated help.
func Hidden() Attr {
	return func(a *attrs) {
		a.hidden = true
	}
}

// Names is a readability helper for alias lists.
func Names(names ...string) []string {
	return names
}

// Definition is the type-erased view of a registered option.
type Definition interface {
	Names() []string
	Usage() string
	EnvVar() string
	Hidden() bool
	// AllowsMissing reports whether absence is allowed (flags, defaults, Optional()).
	AllowsMissing() bool
	// IsFlag reports whether presence alone selects the value (flags and enumerated options).
	IsFlag() bool
	// Any resolves the option and returns its value boxed.
	Any() (any, bool, error)
}

// Option is one declared command line setting. Its value is resolved on first
// read and cached for the life of the Option.
type Option[T any] struct {
	parser  *Parser
	names   []string
	attrs   attrs
	kind    optionKind
	convert Converter[T]
	// pick maps a present alias to its value for flags and enumerated options.
	pick func(alias string) T

	allowMissing bool
	def          func() T

	once    sync.Once
	value   T
	present bool
	err     error
}

func newOption[T any](p *Parser, names []string, kind optionKind, convert Converter[T], settings []Attr) *Option[T] {
	o := &Option[T]{
		parser:  p,
		names:   append([]string(nil), names...),
		kind:    kind,
		convert: convert,
	}
	for _, set := range settings {
		if set != nil {
			set(&o.attrs)
		}
	}
	return o
}

// Default supplies the value used when the option is absent from args and
// environment. The supplier runs at most once. Default implies Optional.
func (o *Option[T]) Default(supplier func() T) *Option[T] {
	o.allowMissing = true
	o.def = supplier
	return o
}

// DefaultValue is Default with a fixed value. The value is deep-copied so later
// mutations by the caller do not leak into the option.
func (o *Option[T]) DefaultValue(value T) *Option[T] {
	if cloned, err := copystructure.Copy(value); err == nil {
		if v, ok := cloned.(T); ok {
			value = v
		}
	}
	return o.Default(func() T { return value })
}

// Optional allows the option to be absent; the absent value is T's zero value.
func (o *Option[T]) Optional() *Option[T] {
	o.allowMissing = true
	return o
}

// Lookup resolves the option. ok is false when the option is absent and optional.
func (o *Option[T]) Lookup() (value T, ok bool, err error) {
	o.once.Do(func() {
		o.value, o.present, o.err = o.resolve()
	})
	return o.value, o.present, o.err
}

// Get resolves the option, returning T's zero value when it is absent and optional.
func (o *Option[T]) Get() (T, error) {
	v, _, err := o.Lookup()
	return v, err
}

// MustGet resolves the option. Failures go through the parser's MissingPolicy;
// anything not handled there panics.
func (o *Option[T]) MustGet() T {
	v, err := o.Get()
	if err != nil {
		panic(o.parser.HandleError(err))
	}
	return v
}

// Any implements Definition.
func (o *Option[T]) Any() (any, bool, error) {
	v, ok, err := o.Lookup()
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

func (o *Option[T]) Names() []string     { return append([]string(nil), o.names...) }
func (o *Option[T]) Usage() string       { return o.attrs.usage }
func (o *Option[T]) EnvVar() string      { return o.attrs.envVar }
func (o *Option[T]) Hidden() bool        { return o.attrs.hidden }
func (o *Option[T]) AllowsMissing() bool { return o.allowMissing }
func (o *Option[T]) IsFlag() bool        { return o.kind != kindValue }

func (o *Option[T]) resolve() (T, bool, error) {
	var zero T
	p := o.parser

	var positions []int
	for i, tok := range p.args {
		if o.hasName(tok) {
			positions = append(positions, i)
		}
	}

	switch {
	case len(positions) > 1:
		found := make([]string, 0, len(positions))
		for _, i := range positions {
			found = append(found, p.args[i])
		}
		return zero, false, ambiguousOptionError(o.Names(), found)
	case len(positions) == 1:
		v, err := o.fromArgs(positions[0])
		if err != nil {
			return zero, false, err
		}
		p.logger.Debug("option %s resolved from args", o.names[0])
		return v, true, nil
	}

	if raw, ok := lookupEnv(p.env, o.attrs.envVar); ok {
		v, err := o.fromEnv(raw)
		if err != nil {
			return zero, false, err
		}
		p.logger.Debug("option %s resolved from env %s", o.names[0], o.attrs.envVar)
		return v, true, nil
	}

	if !o.allowMissing {
		return zero, false, missingOptionError(o.Names())
	}
	if o.def != nil {
		p.logger.Debug("option %s resolved from default", o.names[0])
		return o.def(), true, nil
	}
	return zero, false, nil
}

func (o *Option[T]) fromArgs(i int) (T, error) {
	var zero T
	p := o.parser
	alias := p.args[i]

	if o.kind != kindValue {
		return o.pick(alias), nil
	}

	if i+1 >= len(p.args) {
		return zero, missingValueError(o.Names(), alias)
	}
	next := p.args[i+1]
	if _, taken := p.index[next]; taken {
		return zero, danglingOptionError(o.Names(), alias, next)
	}
	v, err := o.convert(next)
	if err != nil {
		return zero, conversionError(o.Names(), alias, next, err)
	}
	return v, nil
}

func (o *Option[T]) fromEnv(raw string) (T, error) {
	var zero T
	if o.kind == kindEnum {
		for _, name := range o.names {
			if raw == name || raw == strings.TrimLeft(name, o.parser.prefix) {
				return o.pick(name), nil
			}
		}
		return zero, conversionError(o.Names(), o.attrs.envVar, raw,
			fmt.Errorf("expected one of %s", listAliases(o.names)))
	}
	v, err := o.convert(raw)
	if err != nil {
		return zero, conversionError(o.Names(), o.attrs.envVar, raw, err)
	}
	return v, nil
}

func (o *Option[T]) hasName(tok string) bool {
	for _, n := range o.names {
		if n == tok {
			return true
		}
	}
	return false
}
