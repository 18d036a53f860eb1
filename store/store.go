// Package store provides whole-collection persistence for blog posts. The
// collection is always read and written as a single unit: every mutation is a
// load, an in-memory change, and a full overwrite.
package store

import (
	"context"
	"errors"

	"github.com/setidure/blog-api/models"
)

// Sentinel errors for the two failure classes callers care about. Read
// failures are treated leniently (an unreadable collection degrades to an
// empty one at the service layer); write failures always fail the mutation.
var (
	ErrRead  = errors.New("blog store read failed")
	ErrWrite = errors.New("blog store write failed")
)

// BlogStore is the whole-collection contract shared by every backend.
type BlogStore interface {
	// LoadAll returns the full collection in insertion order.
	// Failures wrap ErrRead.
	LoadAll(ctx context.Context) ([]models.BlogPost, error)

	// SaveAll overwrites the full collection. Failures wrap ErrWrite.
	SaveAll(ctx context.Context, posts []models.BlogPost) error
}
