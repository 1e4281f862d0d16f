package args

import "strings"

// Validate checks the raw args against the registry: every flag-like token must
// be a registered alias, and every required option must appear in the raw args.
// The unknown-argument check runs first and its failure is the one returned.
// Validate is only meaningful once every option the args are meant for is declared.
func (p *Parser) Validate() error {
	if len(p.defs) == 0 {
		return uninitializedParserError()
	}

	present := make(map[string]bool)
	var unknown []string
	for _, tok := range p.args {
		if !strings.HasPrefix(tok, p.prefix) || present[tok] {
			continue
		}
		present[tok] = true
		if _, ok := p.index[tok]; !ok {
			unknown = append(unknown, tok)
		}
	}

	var missing []string
	for _, d := range p.defs {
		if d.AllowsMissing() || anyPresent(d.Names(), present) {
			continue
		}
		missing = append(missing, d.Names()[0])
	}

	if len(unknown) > 0 {
		p.logger.Debug("validate: unknown arguments %v", unknown)
		return unknownArgumentError(unknown)
	}
	if len(missing) > 0 {
		p.logger.Debug("validate: missing arguments %v", missing)
		return missingArgumentError(missing)
	}
	return nil
}

func anyPresent(names []string, present map[string]bool) bool {
	for _, n := range names {
		if present[n] {
			return true
		}
	}
	return false
}
