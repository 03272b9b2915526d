package entities

// RewriteRequest describes one in-place find-and-replace
type RewriteRequest struct {
	FilePath       string
	Pattern        string
	Replacement    string
	NormalizePaths bool
	Platform       string // runtime.GOOS style; only consulted when NormalizePaths is set
}

// RewriteResult reports the outcome of a rewrite
type RewriteResult struct {
	FilePath     string
	Replacement  string // replacement actually substituted, after normalization
	Replacements int
	Modified     bool
}
