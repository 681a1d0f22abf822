package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/notice-service/internal/models"

	"github.com/jackc/pgx/v5"
)

// HistoryRepository хранит результаты уже выполненных команд.
type HistoryRepository interface {
	Get(ctx context.Context, commandID, action string) (*models.Acknowledgement, error)
	Save(ctx context.Context, commandID, action string, ack models.Acknowledgement) error
}

// PostgresHistoryRepository - реализация HistoryRepository для базы данных.
type PostgresHistoryRepository struct {
	DB DBTX
}

// NewPostgresHistoryRepository создаёт новый экземпляр PostgresHistoryRepository.
func NewPostgresHistoryRepository(db DBTX) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{DB: db}
}

// Get возвращает сохранённый ответ команды или nil, если команда ещё не выполнялась.
func (r *PostgresHistoryRepository) Get(ctx context.Context, commandID, action string) (*models.Acknowledgement, error) {
	var data []byte
	query := `SELECT json_data FROM notice_history WHERE command_id = $1 AND action = $2`
	err := r.DB.QueryRow(ctx, query, commandID, action).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history of command %s: %w", commandID, err)
	}

	var ack models.Acknowledgement
	if err = json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode history of command %s: %w", commandID, err)
	}
	return &ack, nil
}

// Save запоминает ответ команды.
func (r *PostgresHistoryRepository) Save(ctx context.Context, commandID, action string, ack models.Acknowledgement) error {
	data, err := json.Marshal(ack)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
       INSERT INTO notice_history (command_id, action, json_data, created_at)
       VALUES ($1, $2, $3, $4)
       ON CONFLICT (command_id, action) DO NOTHING
   `, commandID, action, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}
