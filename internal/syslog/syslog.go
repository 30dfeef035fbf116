// Package syslog grava a trilha de auditoria estruturada do pipeline de
// sincronização. A escrita é best-effort: nenhuma falha interna chega ao
// chamador, que nunca verifica retorno nem ramifica sobre erro de log.
package syslog

import (
	"encoding/json"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

var marshaler = jsoniter.ConfigCompatibleWithStandardLibrary

// unserializable é gravado quando details não pôde ser serializado
// (referências circulares, tipos sem representação JSON)
const unserializable = `"<unserializable>"`

type Logger interface {
	Log(organizationID, component, level, message string, details map[string]any)
}

type dbLogger struct {
	repo repository.SystemLogRepository
}

func New(repo repository.SystemLogRepository) Logger {
	return &dbLogger{
		repo: repo,
	}
}

func (l *dbLogger) Log(organizationID, component, level, message string, details map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Warn("Falha inesperada ao gravar log de sistema")
		}
	}()

	entry := &domain.SystemLogEntry{
		OrganizationID: organizationID,
		Component:      component,
		Level:          level,
		Message:        message,
		Details:        serializeDetails(details),
	}

	if err := l.repo.Insert(entry); err != nil {
		// O log de sistema nunca derruba o pipeline; cai no canal de
		// fallback e segue.
		logrus.WithFields(logrus.Fields{
			"organization_id": organizationID,
			"component":       component,
			"message":         message,
			"error":           err.Error(),
		}).Warn("Não foi possível gravar o log de sistema")
	}
}

// serializeDetails serializa details achatando valores de erro embutidos,
// que a serialização genérica descartaria como "{}"
func serializeDetails(details map[string]any) json.RawMessage {
	if details == nil {
		return nil
	}

	flattened := make(map[string]any, len(details))
	for k, v := range details {
		if err, ok := v.(error); ok {
			flattened[k] = flattenError(err)
			continue
		}
		flattened[k] = v
	}

	payload, err := marshaler.Marshal(flattened)
	if err != nil {
		return json.RawMessage(unserializable)
	}

	return payload
}

func flattenError(err error) map[string]string {
	return map[string]string{
		"message": err.Error(),
		"name":    reflect.TypeOf(err).String(),
		"stack":   fmt.Sprintf("%+v", err),
	}
}

type nopLogger struct{}

func (nopLogger) Log(string, string, string, string, map[string]any) {}

// Nop devolve um Logger que descarta tudo; útil em testes e quando a
// auditoria em banco está desabilitada
func Nop() Logger {
	return nopLogger{}
}
