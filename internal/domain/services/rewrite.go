package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
	"github.com/ochairo/stampkit/internal/domain/interfaces/gateways"
)

// RewriteService performs in-place find-and-replace on text files
type RewriteService struct {
	rewriter   gateways.TextRewriter
	normalizer gateways.PathNormalizer
	logger     interfaces.Logger
}

// NewRewriteService creates a new rewrite service
func NewRewriteService(rewriter gateways.TextRewriter, normalizer gateways.PathNormalizer, logger interfaces.Logger) *RewriteService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &RewriteService{
		rewriter:   rewriter,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Rewrite replaces every match of req.Pattern in the file with the
// replacement and writes the result back over the file, keeping its mode.
// The file is not touched when it does not exist or the pattern is invalid.
func (s *RewriteService) Rewrite(ctx context.Context, req entities.RewriteRequest) (*entities.RewriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(req.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, entities.FileNotFound(req.FilePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", req.FilePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", req.FilePath)
	}

	replacement := req.Replacement
	if req.NormalizePaths {
		replacement = s.normalizer.Normalize(replacement, req.Platform)
		s.logger.Debug("normalized replacement",
			interfaces.F("from", req.Replacement),
			interfaces.F("to", replacement),
			interfaces.F("platform", req.Platform))
	}

	//nolint:gosec // G304: the file to rewrite is named on the command line
	content, err := os.ReadFile(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.FilePath, err)
	}

	updated, count, err := s.rewriter.ReplaceAll(string(content), req.Pattern, replacement)
	if err != nil {
		return nil, err
	}

	result := &entities.RewriteResult{
		FilePath:     req.FilePath,
		Replacement:  replacement,
		Replacements: count,
		Modified:     updated != string(content),
	}

	if err := os.WriteFile(req.FilePath, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", req.FilePath, err)
	}

	s.logger.Debug("file rewritten",
		interfaces.F("path", req.FilePath),
		interfaces.F("replacements", count))

	return result, nil
}
