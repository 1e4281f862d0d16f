package args

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-args/logger"
)

var (
	DefaultName       = "binary"
	DefaultFlagPrefix = "-"
)

// MissingPolicy decides what happens when a required option cannot be resolved
// through MustGet or HandleError.
type MissingPolicy int

const (
	// ReturnError surfaces the MissingOptionError to the caller.
	ReturnError MissingPolicy = iota
	// PrintHelpAndExit prints the failure plus help and terminates the process.
	PrintHelpAndExit
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithName sets the program name used in help text.
func WithName(name string) ParserOption {
	return func(p *Parser) {
		p.name = name
	}
}

// WithMissingPolicy sets the policy applied by HandleError.
func WithMissingPolicy(policy MissingPolicy) ParserOption {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithExitOnMissing is shorthand for WithMissingPolicy(PrintHelpAndExit).
func WithExitOnMissing() ParserOption {
	return WithMissingPolicy(PrintHelpAndExit)
}

// WithEnvironment replaces the environment snapshot taken by New.
func WithEnvironment(env Environment) ParserOption {
	return func(p *Parser) {
		p.env = env
	}
}

// WithOutput sets where the exit path writes its message and help.
func WithOutput(w io.Writer) ParserOption {
	return func(p *Parser) {
		if w != nil {
			p.out = w
		}
	}
}

// WithExitFunc replaces os.Exit on the exit path.
func WithExitFunc(fn func(code int)) ParserOption {
	return func(p *Parser) {
		if fn != nil {
			p.exit = fn
		}
	}
}

// WithFlagPrefix sets the prefix that marks a token as flag-like during Validate.
func WithFlagPrefix(prefix string) ParserOption {
	return func(p *Parser) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithLogger sets the logger used for registration and resolution traces.
func WithLogger(l logger.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// Parser owns the raw arguments and the registry of declared options. A Parser
// is meant to configure one options struct and should not be reused.
type Parser struct {
	args   []string
	name   string
	policy MissingPolicy
	env    Environment
	prefix string
	out    io.Writer
	exit   func(int)
	logger logger.Logger

	// defs holds one entry per option in registration order; index maps every alias into it.
	defs  []Definition
	index map[string]int
}

// New creates a Parser over a copy of rawArgs.
func New(rawArgs []string, opts ...ParserOption) *Parser {
	p := &Parser{
		args:   append([]string(nil), rawArgs...),
		name:   DefaultName,
		policy: ReturnError,
		prefix: DefaultFlagPrefix,
		out:    os.Stderr,
		exit:   os.Exit,
		logger: logger.Nop(),
		index:  map[string]int{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.env == nil {
		p.env = SnapshotEnvironment()
	}
	return p
}

// Args returns a copy of the raw arguments.
func (p *Parser) Args() []string {
	return append([]string(nil), p.args...)
}

// Name returns the program name used in help text.
func (p *Parser) Name() string {
	return p.name
}

// Option declares a string option.
func (p *Parser) Option(names []string, attrs ...Attr) (*Option[string], error) {
	return OptionOf(p, names, Identity, attrs...)
}

// OptionOf declares an option whose value is produced by convert.
func OptionOf[T any](p *Parser, names []string, convert Converter[T], attrs ...Attr) (*Option[T], error) {
	if convert == nil {
		return nil, invalidDefinitionError(names, "nil converter")
	}
	o := newOption(p, names, kindValue, convert, attrs)
	if err := p.register(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Flag declares a boolean option set to true by the presence of any alias.
// Flags never consume a following token and default to false.
func (p *Parser) Flag(names []string, attrs ...Attr) (*Option[bool], error) {
	o := newOption(p, names, kindFlag, Bool(), attrs)
	o.pick = func(string) bool { return true }
	o.DefaultValue(false)
	if err := p.register(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Choice maps one alias of an enumerated option to its value.
type Choice[T comparable] struct {
	Name  string
	Value T
}

// Enumerated declares mutually exclusive aliases, each selecting its own value.
// At most one of the aliases may appear in the raw args.
func Enumerated[T comparable](p *Parser, choices []Choice[T], attrs ...Attr) (*Option[T], error) {
	names := make([]string, 0, len(choices))
	for _, c := range choices {
		names = append(names, c.Name)
	}

	values := make(map[string]T, len(choices))
	seen := make(map[T]string, len(choices))
	for _, c := range choices {
		if prev, dup := seen[c.Value]; dup {
			return nil, invalidDefinitionError(names,
				fmt.Sprintf("%s and %s select the same value", prev, c.Name))
		}
		seen[c.Value] = c.Name
		values[c.Name] = c.Value
	}

	o := newOption[T](p, names, kindEnum, nil, attrs)
	o.pick = func(alias string) T { return values[alias] }
	if err := p.register(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Must panics if err is non-nil.
func Must[T any](o *Option[T], err error) *Option[T] {
	if err != nil {
		panic(err)
	}
	return o
}

func (p *Parser) register(d Definition) error {
	names := d.Names()
	if len(names) == 0 {
		return invalidDefinitionError(names, "no aliases")
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		switch {
		case n == "":
			return invalidDefinitionError(names, "empty alias")
		case seen[n]:
			return invalidDefinitionError(names, fmt.Sprintf("alias %s repeated", n))
		}
		seen[n] = true
		if _, taken := p.index[n]; taken {
			return duplicateOptionError(n)
		}
	}

	p.defs = append(p.defs, d)
	for _, n := range names {
		p.index[n] = len(p.defs) - 1
	}
	p.logger.Debug("registered option %s", strings.Join(names, ", "))
	return nil
}

// Definitions returns one entry per registered option in registration order.
func (p *Parser) Definitions() []Definition {
	return append([]Definition(nil), p.defs...)
}

// Lookup finds the option registered under alias.
func (p *Parser) Lookup(alias string) (Definition, bool) {
	i, ok := p.index[alias]
	if !ok {
		return nil, false
	}
	return p.defs[i], true
}

// Resolve eagerly resolves every registered option and returns the first failure.
func (p *Parser) Resolve() error {
	for _, d := range p.defs {
		if _, _, err := d.Any(); err != nil {
			return err
		}
	}
	return nil
}

// HandleError applies the MissingPolicy. Under PrintHelpAndExit a missing
// required option prints the failure and help, then exits with status 1.
// The error is returned unchanged otherwise.
func (p *Parser) HandleError(err error) error {
	if err == nil || p.policy != PrintHelpAndExit || !errors.Is(err, ErrMissingOption) {
		return err
	}
	p.logger.Error("%v", err)
	fmt.Fprintln(p.out, err.Error())
	fmt.Fprintln(p.out, p.Help())
	p.exit(1)
	return err
}

// Help renders usage text for every visible option in registration order.
func (p *Parser) Help() string {
	blocks := make([]string, 0, len(p.defs))
	for _, d := range p.defs {
		if d.Hidden() {
			continue
		}
		var b strings.Builder
		b.WriteString("  ")
		b.WriteString(strings.Join(d.Names(), ", "))
		if env := d.EnvVar(); env != "" {
			fmt.Fprintf(&b, " [env-var: %s]", env)
		}
		if d.AllowsMissing() {
			b.WriteString(" (optional)")
		}
		if usage := d.Usage(); usage != "" {
			b.WriteString("\n    ")
			b.WriteString(usage)
		}
		blocks = append(blocks, b.String())
	}
	return fmt.Sprintf("Usage '%s <options and flags> ...'\n", p.name) + strings.Join(blocks, "\n")
}
