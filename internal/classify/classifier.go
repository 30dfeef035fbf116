// Package classify implementa o classificador de "temperatura" de campanhas
// a partir do campo livre de UTM. A heurística original é correspondência de
// substring; como não existe enum canônico, as palavras-chave são
// configuráveis por ambiente em vez de fixas no código.
package classify

import "strings"

type Temperature string

const (
	TemperatureP1      Temperature = "P1"
	TemperatureP2      Temperature = "P2"
	TemperatureUnknown Temperature = "unknown"
)

// Classifier recebe o conteúdo de UTM de uma sessão/campanha e devolve a
// temperatura atribuída
type Classifier func(utmContent string) Temperature

// NewKeywordClassifier cria o classificador padrão por substring,
// insensível a maiúsculas. P1 tem precedência sobre P2 quando ambos casam.
func NewKeywordClassifier(p1Keywords, p2Keywords []string) Classifier {
	p1 := lowerAll(p1Keywords)
	p2 := lowerAll(p2Keywords)

	return func(utmContent string) Temperature {
		content := strings.ToLower(utmContent)
		if content == "" {
			return TemperatureUnknown
		}
		if containsAny(content, p1) {
			return TemperatureP1
		}
		if containsAny(content, p2) {
			return TemperatureP2
		}
		return TemperatureUnknown
	}
}

// TrackingRate é a fração de valores que o classificador conseguiu atribuir
// a alguma temperatura
func TrackingRate(values []string, classifier Classifier) float64 {
	if len(values) == 0 {
		return 0
	}

	classified := 0
	for _, v := range values {
		if classifier(v) != TemperatureUnknown {
			classified++
		}
	}

	return float64(classified) / float64(len(values))
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(content string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}
