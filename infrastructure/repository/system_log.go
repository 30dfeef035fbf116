package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/pkg/utils"
)

type SystemLogRepository interface {
	// Insert grava uma entrada de auditoria. A tabela é append-only.
	Insert(entry *domain.SystemLogEntry) error
}

type systemLogRepository struct {
	conn *postgres.Connection
}

func NewSystemLogRepository(conn *postgres.Connection) SystemLogRepository {
	return &systemLogRepository{
		conn: conn,
	}
}

func (r *systemLogRepository) Insert(entry *domain.SystemLogEntry) error {
	id := entry.ID
	if id == "" {
		generated, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do log: %w", err)
		}
		id = generated
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("system_logs").
		Columns("id", "organization_id", "component", "level", "message", "details").
		Values(
			id,
			entry.OrganizationID,
			entry.Component,
			entry.Level,
			entry.Message,
			[]byte(entry.Details),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return &domain.StorageError{Op: "system_logs.insert", Err: err}
	}

	return nil
}
