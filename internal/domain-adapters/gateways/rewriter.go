package gateways

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// RegexRewriter replaces pattern matches using ECMAScript regular expression
// semantics, so patterns written for the JavaScript build scripts keep working
type RegexRewriter struct {
	matchTimeout time.Duration
}

// NewRegexRewriter creates a rewriter. A zero matchTimeout disables the limit.
func NewRegexRewriter(matchTimeout time.Duration) *RegexRewriter {
	return &RegexRewriter{matchTimeout: matchTimeout}
}

// ReplaceAll replaces every match of pattern in content with the literal
// replacement and returns the new content and the number of matches.
// `$` sequences in replacement are not expanded.
func (r *RegexRewriter) ReplaceAll(content, pattern, replacement string) (string, int, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return "", 0, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if r.matchTimeout > 0 {
		re.MatchTimeout = r.matchTimeout
	}

	count := 0
	out, err := re.ReplaceFunc(content, func(regexp2.Match) string {
		count++
		return replacement
	}, -1, -1)
	if err != nil {
		return "", 0, fmt.Errorf("replace failed: %w", err)
	}

	return out, count, nil
}
