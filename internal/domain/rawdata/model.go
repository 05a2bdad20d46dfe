package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	SourceSportmonks = "sportmonks"
	SourceOddsAPI    = "the-odds-api"
)

// Payload is one raw provider response page kept for audit.
type Payload struct {
	Source      string
	Endpoint    string
	Page        int
	PayloadJSON []byte
	PayloadHash string
	FetchedAt   time.Time
}

// NewPayload copies body and stamps its sha256 hash.
func NewPayload(source, endpoint string, page int, body []byte, fetchedAt time.Time) Payload {
	sum := sha256.Sum256(body)
	return Payload{
		Source:      source,
		Endpoint:    endpoint,
		Page:        page,
		PayloadJSON: append([]byte(nil), body...),
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   fetchedAt.UTC(),
	}
}
