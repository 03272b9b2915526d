// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// Stamper compresses a program into a version-stamped artifact and records
// its version
type Stamper interface {
	Stamp(ctx context.Context, programPath string) (*entities.StampResult, error)
}

// Rewriter performs an in-place find-and-replace on a file
type Rewriter interface {
	Rewrite(ctx context.Context, req entities.RewriteRequest) (*entities.RewriteResult, error)
}
