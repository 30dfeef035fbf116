package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/pkg/utils"
)

const (
	integrationsTable = "integrations i"
)

type IntegrationRepository interface {
	GetByID(integrationID string) (*domain.Integration, error)
	ListByProvider(provider domain.Provider) ([]*domain.Integration, error)
	SaveOrUpdate(integration *domain.Integration) error
	UpdateTokens(integrationID, accessToken string, refreshToken *string, expiresAt time.Time) error
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

func (r *integrationRepository) GetByID(integrationID string) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select("i.id, i.organization_id, i.provider, i.external_account_id, i.access_token, i.refresh_token, i.token_expires_at, i.status, i.created_at, i.updated_at").
		From(integrationsTable).
		Where(squirrel.Eq{"i.id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	integration, err := r.scanIntegration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "integrations.get", Err: err}
	}

	return integration, nil
}

func (r *integrationRepository) ListByProvider(provider domain.Provider) ([]*domain.Integration, error) {
	query, args, err := squirrel.
		Select("i.id, i.organization_id, i.provider, i.external_account_id, i.access_token, i.refresh_token, i.token_expires_at, i.status, i.created_at, i.updated_at").
		From(integrationsTable).
		Where(squirrel.Eq{"i.provider": provider, "i.status": domain.IntegrationStatusActive}).
		OrderBy("i.organization_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "integrations.list", Err: err}
	}
	defer rows.Close()

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration := &domain.Integration{}
		if err := rows.Scan(
			&integration.ID,
			&integration.OrganizationID,
			&integration.Provider,
			&integration.ExternalAccountID,
			&integration.AccessToken,
			&integration.RefreshToken,
			&integration.TokenExpiresAt,
			&integration.Status,
			&integration.CreatedAt,
			&integration.UpdatedAt,
		); err != nil {
			return nil, &domain.StorageError{Op: "integrations.list", Err: err}
		}
		integrations = append(integrations, integration)
	}

	if err = rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "integrations.list", Err: err}
	}

	return integrations, nil
}

// SaveOrUpdate cria a integração na primeira configuração bem-sucedida do
// provedor e atualiza credenciais/conta nas seguintes. O par
// (organization_id, provider) é único.
func (r *integrationRepository) SaveOrUpdate(integration *domain.Integration) error {
	if integration.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da integração: %w", err)
		}
		integration.ID = id
	}

	if integration.Status == "" {
		integration.Status = domain.IntegrationStatusActive
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("integrations").
		Columns("id", "organization_id", "provider", "external_account_id", "access_token", "refresh_token", "token_expires_at", "status").
		Values(
			integration.ID,
			integration.OrganizationID,
			integration.Provider,
			integration.ExternalAccountID,
			integration.AccessToken,
			integration.RefreshToken,
			integration.TokenExpiresAt,
			integration.Status,
		).
		Suffix(`
			ON CONFLICT (organization_id, provider) DO UPDATE SET
				external_account_id = EXCLUDED.external_account_id,
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				token_expires_at = EXCLUDED.token_expires_at,
				status = EXCLUDED.status,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return &domain.StorageError{Op: "integrations.save", Err: err}
	}

	return nil
}

// UpdateTokens persiste o token renovado e a nova expiração. Somente o
// serviço de renovação de tokens escreve nestes campos.
func (r *integrationRepository) UpdateTokens(integrationID, accessToken string, refreshToken *string, expiresAt time.Time) error {
	builder := squirrel.
		Update("integrations").
		Set("access_token", accessToken).
		Set("token_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": integrationID}).
		PlaceholderFormat(squirrel.Dollar)

	if refreshToken != nil {
		builder = builder.Set("refresh_token", refreshToken)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return &domain.StorageError{Op: "integrations.update_tokens", Err: err}
	}

	return nil
}

func (r *integrationRepository) scanIntegration(row *sql.Row) (*domain.Integration, error) {
	integration := &domain.Integration{}

	if err := row.Scan(
		&integration.ID,
		&integration.OrganizationID,
		&integration.Provider,
		&integration.ExternalAccountID,
		&integration.AccessToken,
		&integration.RefreshToken,
		&integration.TokenExpiresAt,
		&integration.Status,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return integration, nil
}
