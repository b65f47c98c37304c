package repository

import (
	"context"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// DatasetRepository loads an already-typed dataset from a source.
type DatasetRepository interface {
	Load(ctx context.Context, source string) (entity.Dataset, error)
}
