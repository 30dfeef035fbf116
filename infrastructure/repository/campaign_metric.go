package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/pkg/utils"
)

const (
	campaignMetricsTable = "campaign_metrics cm"
)

type CampaignMetricRepository interface {
	// ReplaceWindow apaga todas as linhas da integração com data >= since e
	// insere as novas dentro de uma única transação. Não é upsert: a janela
	// é limpa por inteiro antes da escrita, de modo que não sobram linhas
	// velhas nem surgem duplicatas para o mesmo (integração, data, campanha).
	ReplaceWindow(integrationID string, since time.Time, metrics []*domain.CampaignMetric) error
	GetByDateRange(integrationID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error)
	CountByIntegration(integrationID string) (int64, error)
}

type campaignMetricRepository struct {
	conn *postgres.Connection
}

func NewCampaignMetricRepository(conn *postgres.Connection) CampaignMetricRepository {
	return &campaignMetricRepository{
		conn: conn,
	}
}

func (r *campaignMetricRepository) ReplaceWindow(integrationID string, since time.Time, metrics []*domain.CampaignMetric) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete("campaign_metrics").
		Where(squirrel.Eq{"integration_id": integrationID}).
		Where(squirrel.GtOrEq{"date": since.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de delete: %w", err)
	}

	insertBuilder := squirrel.StatementBuilder.
		Insert("campaign_metrics").
		Columns("id", "integration_id", "date", "campaign_id", "campaign_name", "spend", "impressions", "clicks", "conversions", "conversion_value", "extras").
		PlaceholderFormat(squirrel.Dollar)

	for _, m := range metrics {
		id := m.ID
		if id == "" {
			id, err = utils.GenerateID()
			if err != nil {
				return fmt.Errorf("erro ao gerar ID da métrica: %w", err)
			}
		}

		var extrasJSON []byte
		if m.Extras != nil {
			extrasJSON, err = json.Marshal(m.Extras)
			if err != nil {
				return fmt.Errorf("erro ao serializar extras para JSON: %w", err)
			}
		}

		insertBuilder = insertBuilder.Values(
			id,
			m.IntegrationID,
			m.Date.Format(time.DateOnly),
			m.CampaignID,
			m.CampaignName,
			m.Spend,
			m.Impressions,
			m.Clicks,
			m.Conversions,
			m.ConversionValue,
			extrasJSON,
		)
	}

	insertSQL, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de insert: %w", err)
	}

	// O insert nunca executa se o delete falhar; a transação garante que a
	// janela não fica pela metade.
	err = r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("delete da janela: %w", err)
		}

		if _, err := tx.Exec(insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("insert da janela: %w", err)
		}

		return nil
	})
	if err != nil {
		return &domain.StorageError{Op: "campaign_metrics.replace_window", Err: err}
	}

	return nil
}

func (r *campaignMetricRepository) GetByDateRange(integrationID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query, args, err := squirrel.
		Select("cm.id, cm.integration_id, cm.date, cm.campaign_id, cm.campaign_name, cm.spend, cm.impressions, cm.clicks, cm.conversions, cm.conversion_value, cm.extras, cm.created_at, cm.updated_at").
		From(campaignMetricsTable).
		Where(squirrel.Eq{"cm.integration_id": integrationID}).
		Where(squirrel.GtOrEq{"cm.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"cm.date": endDate.Format(time.DateOnly)}).
		OrderBy("cm.date ASC, cm.campaign_id ASC").
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
		return nil, &domain.StorageError{Op: "campaign_metrics.get_range", Err: err}
	}
	defer rows.Close()

	metrics := make([]*domain.CampaignMetric, 0)
	for rows.Next() {
		metric, err := r.scanMetric(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "campaign_metrics.get_range", Err: err}
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "campaign_metrics.get_range", Err: err}
	}

	return metrics, nil
}

func (r *campaignMetricRepository) CountByIntegration(integrationID string) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(campaignMetricsTable).
		Where(squirrel.Eq{"cm.integration_id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, &domain.StorageError{Op: "campaign_metrics.count", Err: err}
	}

	return count, nil
}

func (r *campaignMetricRepository) scanMetric(rows *sql.Rows) (*domain.CampaignMetric, error) {
	metric := &domain.CampaignMetric{}
	var extrasJSON []byte

	if err := rows.Scan(
		&metric.ID,
		&metric.IntegrationID,
		&metric.Date,
		&metric.CampaignID,
		&metric.CampaignName,
		&metric.Spend,
		&metric.Impressions,
		&metric.Clicks,
		&metric.Conversions,
		&metric.ConversionValue,
		&extrasJSON,
		&metric.CreatedAt,
		&metric.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if extrasJSON != nil {
		if err := json.Unmarshal(extrasJSON, &metric.Extras); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de extras: %w", err)
		}
	}

	return metric, nil
}
