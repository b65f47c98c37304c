package repository

import (
	"context"
	"io"
)

// ArtifactStore persists generated report files outside the local disk.
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
