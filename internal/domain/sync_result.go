package domain

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusSkipped SyncStatus = "skipped"
	SyncStatusError   SyncStatus = "error"
)

// Razões padronizadas para resultados "skipped"
const (
	SkipReasonNoData   = "no_data"
	SkipReasonDisabled = "integration_disabled"
)

// SyncResult é o resultado transitório da sincronização de uma integração.
// Não é persistido; é agregado em memória por execução do orquestrador e
// devolvido no corpo da resposta do gatilho HTTP.
type SyncResult struct {
	OrganizationID string     `json:"organizationId"`
	Status         SyncStatus `json:"status"`
	Count          int        `json:"count,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	Error          string     `json:"error,omitempty"`
}
