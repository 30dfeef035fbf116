package integrator

import (
	"fmt"

	"github.com/vfg2006/ad-sync-api/internal/domain"
)

// Adapter é o contrato comum dos integradores de provedores de anúncios.
// FetchMetrics busca métricas diárias da janela pedida já na forma canônica;
// uma resposta vazia do provedor é um resultado válido, não um erro.
type Adapter interface {
	Provider() domain.Provider
	FetchMetrics(integration *domain.Integration, window domain.DateRange) ([]domain.MetricRow, error)
}

// ProviderError representa uma resposta não-2xx ou malformada de uma API
// externa, com os campos de diagnóstico específicos do provedor
type ProviderError struct {
	Provider   domain.Provider
	StatusCode int
	Type       string
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("erro do provedor %s (status %d, tipo %s): %s", e.Provider, e.StatusCode, e.Type, e.Message)
}

// RowSample resume uma resposta bruta para a trilha de auditoria: contagem
// mais uma amostra da primeira e da última linha
func RowSample[T any](rows []T) map[string]any {
	sample := map[string]any{
		"raw_rows": len(rows),
	}
	if len(rows) > 0 {
		sample["first_row"] = rows[0]
		sample["last_row"] = rows[len(rows)-1]
	}
	return sample
}
