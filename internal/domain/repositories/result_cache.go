package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ResultCache stores validated results by identity key. Implementations evict
// entries lazily once they are older than their TTL.
type ResultCache interface {
	Get(ctx context.Context, key string) (entities.Result, bool, error)
	Set(ctx context.Context, key string, result entities.Result) error
	// Clear removes every entry and returns how many were removed
	Clear(ctx context.Context) (int, error)
}
