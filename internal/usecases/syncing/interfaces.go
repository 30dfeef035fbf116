package syncing

import (
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

// Syncer define a interface do orquestrador de sincronização consumida pelos
// handlers HTTP e pelos agendadores
type Syncer interface {
	// SyncProvider sincroniza todas as integrações ativas do provedor e
	// devolve um resultado por integração. O erro só é não-nulo quando o
	// lote inteiro não pôde rodar; falhas individuais viram resultados
	// com status "error".
	SyncProvider(provider domain.Provider, lookbackDays int) ([]domain.SyncResult, error)
}
