package repositories

import "context"

// TranscriptArchive keeps the source transcript of a processed meeting
type TranscriptArchive interface {
	// Put stores transcript under the identity key and returns a reference
	// to the stored object
	Put(ctx context.Context, key, transcript string) (string, error)
}
