package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/pkg/apiErrors"
)

// SyncTriggerAuth protege os endpoints de gatilho de sincronização com um
// segredo compartilhado via header `Authorization: Bearer <secret>`. A
// comparação é em tempo constante.
func SyncTriggerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingTriggerSecret, "Header Authorization obrigatório", nil)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrMissingTriggerSecret, "Bearer token obrigatório", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logrus.Warn("Tentativa de acionar sincronização com segredo inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidTriggerSecret, "Segredo do gatilho inválido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
