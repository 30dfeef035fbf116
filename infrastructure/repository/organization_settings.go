package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

const (
	organizationSettingsTable = "organization_settings os"
)

// OrganizationSettingsRepository resolve os identificadores de conta por
// organização. Os adaptadores leem daqui, e não do registro de integração,
// para que mudanças de configuração não exijam reautenticação.
type OrganizationSettingsRepository interface {
	GetProviderSettings(organizationID string, provider domain.Provider) (*domain.ProviderSettings, error)
}

type organizationSettingsRepository struct {
	conn *postgres.Connection
}

func NewOrganizationSettingsRepository(conn *postgres.Connection) OrganizationSettingsRepository {
	return &organizationSettingsRepository{
		conn: conn,
	}
}

func (r *organizationSettingsRepository) GetProviderSettings(organizationID string, provider domain.Provider) (*domain.ProviderSettings, error) {
	query, args, err := squirrel.
		Select("os.organization_id, os.provider, os.account_id, os.conversion_action").
		From(organizationSettingsTable).
		Where(squirrel.Eq{"os.organization_id": organizationID, "os.provider": provider}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	settings := &domain.ProviderSettings{}
	err = r.conn.QueryRow(query, args...).Scan(
		&settings.OrganizationID,
		&settings.Provider,
		&settings.AccountID,
		&settings.ConversionAction,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "organization_settings.get", Err: err}
	}

	return settings, nil
}
