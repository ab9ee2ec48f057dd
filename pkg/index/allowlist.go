package index

import "regexp"

// Allowlist filters paths by a deny-then-allow regex pair. A path is
// permitted if it matches none of Deny, and either Allow is empty or the
// path matches at least one pattern in Allow.
type Allowlist struct {
	Allow []*regexp.Regexp
	Deny  []*regexp.Regexp
}

// CompileAllowlist compiles the given allow and deny pattern strings into an
// Allowlist. It returns an error naming the first pattern that fails to
// compile.
func CompileAllowlist(allow, deny []string) (Allowlist, error) {
	allowed, err := compilePatterns(allow)
	if err != nil {
		return Allowlist{}, err
	}
	denied, err := compilePatterns(deny)
	if err != nil {
		return Allowlist{}, err
	}
	return Allowlist{Allow: allowed, Deny: denied}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		expr, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled[i] = expr
	}
	return compiled, nil
}

// IsAllowed reports whether path survives the allowlist: it is rejected if
// any Deny pattern matches, then admitted if Allow is empty or at least one
// Allow pattern matches.
func (a Allowlist) IsAllowed(path string) bool {
	for _, pattern := range a.Deny {
		if pattern.MatchString(path) {
			return false
		}
	}
	if len(a.Allow) == 0 {
		return true
	}
	for _, pattern := range a.Allow {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}
