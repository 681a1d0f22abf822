package services

import (
	"context"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
	"github.com/senyabanana/notice-service/internal/repository"
)

// ReleaseService загружает последние снимки документов и сохраняет новые.
type ReleaseService struct {
	Repo repository.ReleaseRepository
	IDs  *IdentityGenerator
}

// NewReleaseService создаёт новый экземпляр ReleaseService.
func NewReleaseService(repo repository.ReleaseRepository, ids *IdentityGenerator) *ReleaseService {
	if ids == nil {
		ids = NewIdentityGenerator(nil)
	}
	return &ReleaseService{Repo: repo, IDs: ids}
}

// GetRecord возвращает последний релиз документа ocid.
func (s *ReleaseService) GetRecord(ctx context.Context, cpid, ocid string) (*models.ReleaseEntity, error) {
	if err := ValidateOCID(cpid, ocid); err != nil {
		return nil, err
	}
	return s.Repo.GetByOCID(ctx, cpid, ocid)
}

// GetMS возвращает последний релиз мастер-документа процесса.
func (s *ReleaseService) GetMS(ctx context.Context, cpid string) (*models.ReleaseEntity, error) {
	return s.GetRecord(ctx, cpid, cpid)
}

// GetRecordByStage возвращает последний релиз документа этапа stage.
func (s *ReleaseService) GetRecordByStage(ctx context.Context, cpid string, stage models.Stage) (*models.ReleaseEntity, error) {
	if cpid == "" {
		return nil, models.NewInvalidInputError("cpid is required")
	}
	return s.Repo.GetByStage(ctx, cpid, stage)
}

// releaseStamp - id и дата нового релиза документа.
type releaseStamp struct {
	ID   string
	Date time.Time
}

func (s *ReleaseService) stampFor(ocid string, date time.Time) releaseStamp {
	return releaseStamp{ID: s.IDs.NewReleaseID(ocid), Date: date}
}

// apply ставит на копию релиза новый id, дату и, если переданы, теги.
func (st releaseStamp) apply(rel models.Release, tags ...models.Tag) models.Release {
	rel.ID = st.ID
	rel.Date = st.Date
	if len(tags) > 0 {
		rel.Tag = append([]models.Tag(nil), tags...)
	} else {
		rel.Tag = append([]models.Tag(nil), rel.Tag...)
	}
	return rel
}

// pendingRelease - вычисленный, но ещё не сохранённый снимок.
type pendingRelease struct {
	stage       models.Stage
	release     models.Release
	publishDate time.Time
}

func pendingFrom(entity *models.ReleaseEntity, release models.Release) pendingRelease {
	return pendingRelease{stage: entity.Stage, release: release, publishDate: entity.PublishDate}
}

// ensureAbsent возвращает ошибку, если у документа ocid уже есть релизы.
func (s *ReleaseService) ensureAbsent(ctx context.Context, cpid, ocid string) error {
	_, err := s.GetRecord(ctx, cpid, ocid)
	switch {
	case err == nil:
		return models.NewInvalidInputError("document '" + ocid + "' already exists")
	case models.IsKind(err, models.KindNotFound):
		return nil
	}
	return err
}

// saveAll сохраняет снимки по очереди. Уже сохранённые снимки при ошибке не откатываются.
// Документ с ocid процесса хранится с этапом MS, кроме статьи расходов.
func (s *ReleaseService) saveAll(ctx context.Context, cpid string, releases ...pendingRelease) ([]models.DocumentKey, error) {
	updated := make([]models.DocumentKey, 0, len(releases))
	for _, p := range releases {
		if p.release.OCID == cpid && p.stage != models.StageEI {
			p.stage = models.StageMS
		}
		entity := models.ReleaseEntity{
			CPID:        cpid,
			OCID:        p.release.OCID,
			ReleaseID:   p.release.ID,
			Stage:       p.stage,
			Status:      p.release.Tender.Status,
			ReleaseDate: p.release.Date,
			PublishDate: p.publishDate,
			Release:     p.release,
		}
		if err := s.Repo.Save(ctx, entity); err != nil {
			return updated, err
		}
		updated = append(updated, models.DocumentKey{CPID: cpid, OCID: p.release.OCID})
	}
	return updated, nil
}

// commit сохраняет снимки и формирует ответ на событие.
func (s *ReleaseService) commit(ctx context.Context, ec models.EventContext, releases ...pendingRelease) (*models.Acknowledgement, error) {
	return s.commitAs(ctx, ec.CPID, ec.OCID, releases...)
}

// commitAs сохраняет снимки и отвечает от имени документа ocid.
func (s *ReleaseService) commitAs(ctx context.Context, cpid, ocid string, releases ...pendingRelease) (*models.Acknowledgement, error) {
	updated, err := s.saveAll(ctx, cpid, releases...)
	if err != nil {
		return nil, err
	}
	return &models.Acknowledgement{CPID: cpid, OCID: ocid, Updated: updated}, nil
}

// updateRecord загружает документ ec.OCID, применяет transform и сохраняет результат.
func (s *ReleaseService) updateRecord(ctx context.Context, ec models.EventContext, transform func(models.Release, releaseStamp) (models.Release, error)) (*models.Acknowledgement, error) {
	entity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}
	release, err := transform(entity.Release, s.stampFor(entity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingFrom(entity, release))
}

// relatedProcess возвращает ссылку на документ identifier с типом связи relation.
func (s *ReleaseService) relatedProcess(relation models.RelatedProcessType, identifier string) models.RelatedProcess {
	return models.RelatedProcess{
		ID:           s.IDs.NewRelatedProcessID(),
		Relationship: []models.RelatedProcessType{relation},
		Scheme:       relatedProcessScheme,
		Identifier:   identifier,
	}
}

func withBidDetails(prev *models.Bids, details []models.Bid) *models.Bids {
	if prev == nil && details == nil {
		return nil
	}
	return &models.Bids{Details: details}
}
