package rawdata

import "context"

type Repository interface {
	InsertMany(ctx context.Context, items []Payload) error
}

// Archiver receives raw pages as they are fetched. Implementations must not block the caller
// on storage failures.
type Archiver interface {
	Archive(ctx context.Context, payload Payload)
}

type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, Payload) {}
