package dto

type IngestDocument struct {
	Content    string `json:"content" validate:"required"`
	SourceName string `json:"source_name"`
}

type IngestKnowledgeRequest struct {
	Documents []IngestDocument `json:"documents" validate:"required,min=1,dive"`
}

// PublishIngestMessage is the queue payload between the ingest
// endpoint and the ingestion consumer.
type PublishIngestMessage struct {
	Category  string           `json:"category"`
	Documents []IngestDocument `json:"documents"`
}

type IngestKnowledgeResponse struct {
	Category  string `json:"category"`
	Documents int    `json:"documents"`
	Queued    bool   `json:"queued"`
}

type PurgeKnowledgeResponse struct {
	Category string `json:"category"`
	Purged   bool   `json:"purged"`
}
