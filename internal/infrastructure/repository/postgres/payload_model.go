package postgres

import (
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
)

const providerPayloadsTable = "provider_payloads"

type providerPayloadInsertModel struct {
	Source      string    `db:"source"`
	Endpoint    string    `db:"endpoint"`
	Page        int       `db:"page"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

func toProviderPayloadInsertModels(items []rawdata.Payload) []providerPayloadInsertModel {
	out := make([]providerPayloadInsertModel, 0, len(items))
	for _, item := range items {
		page := item.Page
		if page <= 0 {
			page = 1
		}
		out = append(out, providerPayloadInsertModel{
			Source:      item.Source,
			Endpoint:    item.Endpoint,
			Page:        page,
			Payload:     string(item.PayloadJSON),
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt,
		})
	}
	return out
}
