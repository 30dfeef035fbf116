package syslog

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestLog_GravaEntradaComDetalhes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSystemLogRepository(ctrl)

	var captured *domain.SystemLogEntry
	mockRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(entry *domain.SystemLogEntry) error {
			captured = entry
			return nil
		})

	logger := New(mockRepo)
	logger.Log("org-1", domain.ComponentSync, domain.LogLevelInfo, "Sincronização iniciada", map[string]any{
		"integration_id": "abc123",
		"rows":           42,
	})

	require.NotNil(t, captured)
	assert.Equal(t, "org-1", captured.OrganizationID)
	assert.Equal(t, domain.ComponentSync, captured.Component)
	assert.Equal(t, domain.LogLevelInfo, captured.Level)
	assert.Equal(t, "Sincronização iniciada", captured.Message)

	var details map[string]any
	require.NoError(t, json.Unmarshal(captured.Details, &details))
	assert.Equal(t, "abc123", details["integration_id"])
	assert.Equal(t, float64(42), details["rows"])
}

func TestLog_AchataErrosNosDetalhes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSystemLogRepository(ctrl)

	var captured *domain.SystemLogEntry
	mockRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(entry *domain.SystemLogEntry) error {
			captured = entry
			return nil
		})

	logger := New(mockRepo)
	logger.Log("org-1", domain.ComponentAdapter, domain.LogLevelError, "Falha no provedor", map[string]any{
		"error": errors.New("timeout na API"),
	})

	require.NotNil(t, captured)

	var details map[string]any
	require.NoError(t, json.Unmarshal(captured.Details, &details))

	// O erro vira um objeto com mensagem e tipo, não um "{}" vazio
	errDetails, ok := details["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "timeout na API", errDetails["message"])
	assert.NotEmpty(t, errDetails["name"])
	assert.NotEmpty(t, errDetails["stack"])
}

func TestLog_FalhaDeInsertNaoPropaga(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSystemLogRepository(ctrl)
	mockRepo.EXPECT().
		Insert(gomock.Any()).
		Return(errors.New("banco indisponível"))

	logger := New(mockRepo)

	// Não pode lançar pânico nem devolver nada ao chamador
	assert.NotPanics(t, func() {
		logger.Log("org-1", domain.ComponentSync, domain.LogLevelError, "Falha qualquer", nil)
	})
}

func TestLog_DetalhesNaoSerializaveisViraSentinela(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSystemLogRepository(ctrl)

	var captured *domain.SystemLogEntry
	mockRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(entry *domain.SystemLogEntry) error {
			captured = entry
			return nil
		})

	logger := New(mockRepo)
	logger.Log("org-1", domain.ComponentSync, domain.LogLevelInfo, "Detalhe estranho", map[string]any{
		"ch": make(chan int), // sem representação JSON
	})

	require.NotNil(t, captured)
	assert.Equal(t, unserializable, string(captured.Details))
}

func TestLog_DetalhesNulos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSystemLogRepository(ctrl)

	var captured *domain.SystemLogEntry
	mockRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(entry *domain.SystemLogEntry) error {
			captured = entry
			return nil
		})

	logger := New(mockRepo)
	logger.Log("org-1", domain.ComponentSync, domain.LogLevelInfo, "Sem detalhes", nil)

	require.NotNil(t, captured)
	assert.Nil(t, captured.Details)
}

func TestNop_NaoFazNada(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Log("org-1", domain.ComponentSync, domain.LogLevelInfo, "descartado", nil)
	})
}
