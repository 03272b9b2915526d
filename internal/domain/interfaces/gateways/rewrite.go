package gateways

// TextRewriter replaces every pattern match in a text with a literal replacement
type TextRewriter interface {
	ReplaceAll(content, pattern, replacement string) (string, int, error)
}

// PathNormalizer rewrites a replacement string into a forward-slash path form
type PathNormalizer interface {
	Normalize(value, platform string) string
}
