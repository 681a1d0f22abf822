package services

import "github.com/senyabanana/notice-service/internal/models"

// MissingPolicy определяет, что делать с входящим id, которого нет в коллекции.
type MissingPolicy int

const (
	InsertMissing MissingPolicy = iota // добавить сконвертированную сущность
	SkipMissing                        // проигнорировать
	RejectMissing                      // вернуть NotFound
)

// MergeRule описывает слияние коллекции с ключом id и входящего списка.
//
// Для id из обеих коллекций вызывается Override: он получает копию
// существующей сущности и возвращает её с переписанными полями правила.
// Сущности без обновлений переносятся без изменений. Входящие сущности
// с новыми id обрабатываются по Missing. Порядок существующих сущностей
// сохраняется, новые добавляются в порядке запроса.
type MergeRule[T, U any] struct {
	Entity     string
	ExistingID func(T) string
	IncomingID func(U) string
	Override   func(existing T, incoming U) T
	Convert    func(incoming U) T
	Missing    MissingPolicy
}

// Apply возвращает новую коллекцию, не изменяя existing.
// При повторении id во входящем списке используется последнее значение.
func (r MergeRule[T, U]) Apply(existing []T, incoming []U) ([]T, error) {
	incomingByID := make(map[string]U, len(incoming))
	order := make([]string, 0, len(incoming))
	for _, item := range incoming {
		id := r.IncomingID(item)
		if _, seen := incomingByID[id]; !seen {
			order = append(order, id)
		}
		incomingByID[id] = item
	}

	merged := make([]T, 0, len(existing)+len(incoming))
	present := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		id := r.ExistingID(item)
		present[id] = struct{}{}
		if update, ok := incomingByID[id]; ok && r.Override != nil {
			item = r.Override(item, update)
		}
		merged = append(merged, item)
	}

	for _, id := range order {
		if _, ok := present[id]; ok {
			continue
		}
		switch r.Missing {
		case RejectMissing:
			return nil, models.NewNotFoundError(r.Entity, id)
		case SkipMissing:
			continue
		}
		merged = append(merged, r.Convert(incomingByID[id]))
	}

	if len(merged) == 0 {
		return nil, nil
	}
	return merged, nil
}

// With возвращает копию правила с другой политикой для новых id.
func (r MergeRule[T, U]) With(missing MissingPolicy, convert func(U) T) MergeRule[T, U] {
	r.Missing = missing
	if convert != nil {
		r.Convert = convert
	}
	return r
}
