package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/senyabanana/notice-service/internal/models"
)

// MemoryReleaseRepository хранит историю релизов в памяти процесса.
// Релизы хранятся в сериализованном виде, поэтому загруженный снимок
// никогда не разделяет память с сохранённым.
type MemoryReleaseRepository struct {
	mu      sync.RWMutex
	history []storedRelease
}

type storedRelease struct {
	entity models.ReleaseEntity
	data   []byte
}

// NewMemoryReleaseRepository создаёт пустое хранилище.
func NewMemoryReleaseRepository() *MemoryReleaseRepository {
	return &MemoryReleaseRepository{}
}

// GetByOCID возвращает последний релиз документа.
func (r *MemoryReleaseRepository) GetByOCID(_ context.Context, cpid, ocid string) (*models.ReleaseEntity, error) {
	return r.latest(func(e models.ReleaseEntity) bool {
		return e.CPID == cpid && e.OCID == ocid
	}, models.NewNotFoundError("record", ocid))
}

// GetByStage возвращает последний релиз процесса на указанном этапе.
func (r *MemoryReleaseRepository) GetByStage(_ context.Context, cpid string, stage models.Stage) (*models.ReleaseEntity, error) {
	return r.latest(func(e models.ReleaseEntity) bool {
		return e.CPID == cpid && e.Stage == stage
	}, models.NewNotFoundError("record for stage", string(stage)))
}

// Save добавляет релиз в историю.
func (r *MemoryReleaseRepository) Save(_ context.Context, entity models.ReleaseEntity) error {
	data, err := json.Marshal(entity.Release)
	if err != nil {
		return fmt.Errorf("failed to encode release %s: %w", entity.ReleaseID, err)
	}
	entity.Release = models.Release{}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, storedRelease{entity: entity, data: data})
	return nil
}

// Count возвращает количество сохранённых релизов.
func (r *MemoryReleaseRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

func (r *MemoryReleaseRepository) latest(match func(models.ReleaseEntity) bool, notFound error) (*models.ReleaseEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.history) - 1; i >= 0; i-- {
		stored := r.history[i]
		if !match(stored.entity) {
			continue
		}
		entity := stored.entity
		if err := json.Unmarshal(stored.data, &entity.Release); err != nil {
			return nil, fmt.Errorf("failed to decode release %s: %w", entity.ReleaseID, err)
		}
		return &entity, nil
	}
	return nil, notFound
}

// MemoryHistoryRepository - реализация HistoryRepository в памяти.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries map[string]models.Acknowledgement
}

// NewMemoryHistoryRepository создаёт пустую историю команд.
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{entries: make(map[string]models.Acknowledgement)}
}

// Get возвращает сохранённый ответ команды или nil.
func (r *MemoryHistoryRepository) Get(_ context.Context, commandID, action string) (*models.Acknowledgement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ack, ok := r.entries[commandID+"/"+action]
	if !ok {
		return nil, nil
	}
	return &ack, nil
}

// Save запоминает ответ команды, если он ещё не сохранён.
func (r *MemoryHistoryRepository) Save(_ context.Context, commandID, action string, ack models.Acknowledgement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := commandID + "/" + action
	if _, ok := r.entries[key]; !ok {
		r.entries[key] = ack
	}
	return nil
}
