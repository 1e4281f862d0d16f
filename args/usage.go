package args

import (
	"strings"

	"github.com/spf13/pflag"
)

// FlagSet mirrors the registered options into a pflag.FlagSet so they can be
// rendered in GNU column style. The returned set is for display; parsing stays
// with the Parser.
//
// Value options contribute their first --long alias. Flags and enumerated options
// contribute one bool entry per --long alias, so every choice is listed. The first
// single-letter -x alias becomes the shorthand of the first entry. Aliases pflag
// cannot express, such as -ab or +v, are left out, and an option made only of
// such aliases does not appear.
func (p *Parser) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(p.name, pflag.ContinueOnError)
	fs.SortFlags = false

	for _, d := range p.defs {
		longs, short := pflagNames(d.Names())
		if len(longs) == 0 && short != "" {
			longs = []string{short}
		}
		if !d.IsFlag() && len(longs) > 1 {
			longs = longs[:1]
		}

		usage := d.Usage()
		if env := d.EnvVar(); env != "" {
			usage = strings.TrimSpace(usage + " [env-var: " + env + "]")
		}

		for i, long := range longs {
			if fs.Lookup(long) != nil {
				continue
			}
			shorthand := ""
			if i == 0 && short != "" && fs.ShorthandLookup(short) == nil {
				shorthand = short
			}
			if d.IsFlag() {
				fs.BoolP(long, shorthand, false, usage)
			} else {
				fs.StringP(long, shorthand, "", usage)
			}
			if d.Hidden() {
				_ = fs.MarkHidden(long)
			}
		}
	}
	return fs
}

// FlagUsages renders the visible options in pflag's usage format.
func (p *Parser) FlagUsages() string {
	return p.FlagSet().FlagUsages()
}

// pflagNames collects the --long aliases in order and the first single-letter -x alias.
func pflagNames(names []string) (longs []string, short string) {
	for _, n := range names {
		switch {
		case strings.HasPrefix(n, "--") && len(n) > 2:
			longs = append(longs, n[2:])
		case len(n) == 2 && n[0] == '-' && n[1] != '-':
			if short == "" {
				short = n[1:]
			}
		}
	}
	return longs, short
}
