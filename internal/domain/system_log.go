package domain

import (
	"encoding/json"
	"time"
)

// Níveis aceitos nas entradas de log de sistema
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Componentes conhecidos do pipeline, usados no campo component
const (
	ComponentSync      = "sync"
	ComponentAdapter   = "adapter"
	ComponentTokens    = "tokens"
	ComponentScheduler = "scheduler"
)

// SystemLogEntry é a linha de auditoria append-only das tentativas e falhas
// de sincronização. A escrita é sempre best-effort: falhas ao gravar nunca
// interrompem o pipeline.
type SystemLogEntry struct {
	ID             string
	OrganizationID string
	Component      string
	Level          string
	Message        string
	Details        json.RawMessage
	CreatedAt      time.Time
}
