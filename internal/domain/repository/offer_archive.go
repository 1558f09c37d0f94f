package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// OfferArchiveRepository stores raw provider payloads for later
// inspection and returns the document id to reference from the
// observation row
type OfferArchiveRepository interface {
	Archive(ctx context.Context, payload *entity.OfferPayload) (string, error)
	Find(ctx context.Context, id string) (*entity.OfferPayload, error)
}
