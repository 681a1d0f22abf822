package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/senyabanana/notice-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// DBTX - общий интерфейс pgxpool.Pool и pgx-моков.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ReleaseRepository - интерфейс для работы с релизами.
type ReleaseRepository interface {
	GetByOCID(ctx context.Context, cpid, ocid string) (*models.ReleaseEntity, error)
	GetByStage(ctx context.Context, cpid string, stage models.Stage) (*models.ReleaseEntity, error)
	Save(ctx context.Context, entity models.ReleaseEntity) error
}

// PostgresReleaseRepository - реализация ReleaseRepository для базы данных.
type PostgresReleaseRepository struct {
	DB DBTX
}

// NewPostgresReleaseRepository создаёт новый экземпляр PostgresReleaseRepository.
func NewPostgresReleaseRepository(db DBTX) *PostgresReleaseRepository {
	return &PostgresReleaseRepository{DB: db}
}

const selectRelease = `SELECT cp_id, oc_id, release_id, stage, status, release_date, publish_date, json_data FROM notice_release`

// GetByOCID возвращает последний релиз документа.
func (r *PostgresReleaseRepository) GetByOCID(ctx context.Context, cpid, ocid string) (*models.ReleaseEntity, error) {
	query := selectRelease + ` WHERE cp_id = $1 AND oc_id = $2 ORDER BY seq DESC LIMIT 1`
	entity, err := scanRelease(r.DB.QueryRow(ctx, query, cpid, ocid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("record", ocid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get release %s/%s: %w", cpid, ocid, err)
	}
	return entity, nil
}

// GetByStage возвращает последний релиз процесса на указанном этапе.
func (r *PostgresReleaseRepository) GetByStage(ctx context.Context, cpid string, stage models.Stage) (*models.ReleaseEntity, error) {
	query := selectRelease + ` WHERE cp_id = $1 AND stage = $2 ORDER BY seq DESC LIMIT 1`
	entity, err := scanRelease(r.DB.QueryRow(ctx, query, cpid, string(stage)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFoundError("record for stage", string(stage))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get release %s/%s: %w", cpid, stage, err)
	}
	return entity, nil
}

// Save сохраняет новый релиз. Предыдущие релизы документа не изменяются.
func (r *PostgresReleaseRepository) Save(ctx context.Context, entity models.ReleaseEntity) error {
	data, err := json.Marshal(entity.Release)
	if err != nil {
		return fmt.Errorf("failed to encode release %s: %w", entity.ReleaseID, err)
	}

	tags := make([]string, 0, len(entity.Release.Tag))
	for _, tag := range entity.Release.Tag {
		tags = append(tags, string(tag))
	}

	_, err = r.DB.Exec(ctx, `
       INSERT INTO notice_release (cp_id, oc_id, release_id, stage, status, tags, release_date, publish_date, json_data)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
   `,
		entity.CPID,
		entity.OCID,
		entity.ReleaseID,
		string(entity.Stage),
		string(entity.Status),
		pq.Array(tags),
		entity.ReleaseDate,
		entity.PublishDate,
		data)
	if err != nil {
		return fmt.Errorf("failed to insert release: %w", err)
	}
	return nil
}

func scanRelease(row pgx.Row) (*models.ReleaseEntity, error) {
	var (
		entity models.ReleaseEntity
		stage  string
		status string
		data   []byte
	)
	if err := row.Scan(
		&entity.CPID,
		&entity.OCID,
		&entity.ReleaseID,
		&stage,
		&status,
		&entity.ReleaseDate,
		&entity.PublishDate,
		&data); err != nil {
		return nil, err
	}
	entity.Stage = models.Stage(stage)
	entity.Status = models.TenderStatus(status)

	if err := json.Unmarshal(data, &entity.Release); err != nil {
		return nil, fmt.Errorf("failed to decode release %s: %w", entity.ReleaseID, err)
	}
	return &entity, nil
}
