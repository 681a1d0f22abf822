package services

import (
	"context"

	"github.com/senyabanana/notice-service/internal/models"
)

// BudgetService ведёт документы статей расходов (EI) и источников финансирования (FS).
// Статья расходов - отдельный процесс, её ocid совпадает с cpid.
// Источники финансирования хранятся внутри процесса своей статьи расходов.
type BudgetService struct {
	*ReleaseService
}

// NewBudgetService создаёт новый экземпляр BudgetService.
func NewBudgetService(releases *ReleaseService) *BudgetService {
	return &BudgetService{ReleaseService: releases}
}

// CreateEI создаёт статью расходов ec.CPID.
func (s *BudgetService) CreateEI(ctx context.Context, ec models.EventContext, data models.ExpenditureItemData) (*models.Acknowledgement, error) {
	if err := s.ensureAbsent(ctx, ec.CPID, ec.CPID); err != nil {
		return nil, err
	}

	ei := models.Release{
		OCID:           ec.CPID,
		InitiationType: initiationTender,
		Title:          data.Title,
		Planning:       data.Planning,
		Tender:         data.Tender,
	}
	if data.Buyer != nil {
		registry, err := NewPartyRegistry(nil)
		if err != nil {
			return nil, err
		}
		buyer, err := registry.Add(*data.Buyer, models.RoleBuyer)
		if err != nil {
			return nil, err
		}
		ei.Buyer = &buyer
		ei.Parties = registry.Parties()
	}
	ei = s.stampFor(ec.CPID, ec.ReleaseDate).apply(ei, models.TagCompiled)

	return s.commitAs(ctx, ec.CPID, ec.CPID,
		pendingRelease{stage: models.StageEI, release: ei, publishDate: ec.ReleaseDate})
}

// UpdateEI заменяет название, планирование и тендер статьи расходов.
func (s *BudgetService) UpdateEI(ctx context.Context, ec models.EventContext, data models.ExpenditureItemData) (*models.Acknowledgement, error) {
	entity, err := s.getBudgetDocument(ctx, ec.CPID, ec.CPID, models.StageEI)
	if err != nil {
		return nil, err
	}

	ei := s.stampFor(entity.OCID, ec.ReleaseDate).apply(entity.Release)
	ei.Title = data.Title
	ei.Planning = data.Planning
	ei.Tender = data.Tender
	return s.commitAs(ctx, ec.CPID, ec.CPID, pendingFrom(entity, ei))
}

// CreateFS создаёт источник финансирования статьи расходов ec.CPID и связывает документы между собой.
func (s *BudgetService) CreateFS(ctx context.Context, ec models.EventContext, data models.FundingSourceData) (*models.Acknowledgement, error) {
	eiEntity, err := s.getBudgetDocument(ctx, ec.CPID, ec.CPID, models.StageEI)
	if err != nil {
		return nil, err
	}

	ocid := s.IDs.NewOCID(ec.CPID, models.StageFS)
	fs := models.Release{
		OCID:             ocid,
		InitiationType:   initiationTender,
		RelatedProcesses: []models.RelatedProcess{s.relatedProcess(models.RelationExpenditureItem, ec.CPID)},
	}
	fs, err = applyFundingSource(fs, data.FS)
	if err != nil {
		return nil, err
	}
	fs = s.stampFor(ocid, ec.ReleaseDate).apply(fs, models.TagPlanning)

	ei := s.stampFor(eiEntity.OCID, ec.ReleaseDate).apply(eiEntity.Release)
	ei.RelatedProcesses = appendRelatedProcess(eiEntity.Release.RelatedProcesses,
		s.relatedProcess(models.RelationFundingSource, ocid))
	if data.EI != nil {
		ei.Planning = withBudgetAmount(ei.Planning, data.EI.TotalAmount)
	}

	return s.commitAs(ctx, ec.CPID, ocid,
		pendingRelease{stage: models.StageFS, release: fs, publishDate: ec.ReleaseDate},
		pendingFrom(eiEntity, ei))
}

// UpdateFS обновляет источник финансирования ec.OCID. Сумма статьи расходов
// пересчитывается, только если изменилась сумма источника.
func (s *BudgetService) UpdateFS(ctx context.Context, ec models.EventContext, data models.FundingSourceData) (*models.Acknowledgement, error) {
	fsEntity, err := s.getBudgetDocument(ctx, ec.CPID, ec.OCID, models.StageFS)
	if err != nil {
		return nil, err
	}

	fs, err := applyFundingSource(s.stampFor(fsEntity.OCID, ec.ReleaseDate).apply(fsEntity.Release), data.FS)
	if err != nil {
		return nil, err
	}
	pending := []pendingRelease{pendingFrom(fsEntity, fs)}

	prevAmount, _ := budgetAmount(fsEntity.Release.Planning)
	amount, _ := budgetAmount(fs.Planning)
	if data.EI != nil && amount != prevAmount {
		eiEntity, err := s.getBudgetDocument(ctx, ec.CPID, ec.CPID, models.StageEI)
		if err != nil {
			return nil, err
		}
		ei := s.stampFor(eiEntity.OCID, ec.ReleaseDate).apply(eiEntity.Release)
		ei.Planning = withBudgetAmount(ei.Planning, data.EI.TotalAmount)
		pending = append(pending, pendingFrom(eiEntity, ei))
	}
	return s.commitAs(ctx, ec.CPID, ec.OCID, pending...)
}

// getBudgetDocument возвращает последний релиз документа ocid, если он хранится на этапе stage.
func (s *BudgetService) getBudgetDocument(ctx context.Context, cpid, ocid string, stage models.Stage) (*models.ReleaseEntity, error) {
	entity, err := s.GetRecord(ctx, cpid, ocid)
	if err != nil {
		return nil, err
	}
	if entity.Stage != stage {
		return nil, models.NewNotFoundError("budget document "+string(stage), ocid)
	}
	return entity, nil
}

// applyFundingSource переносит данные источника в релиз. Финансирующая организация
// и плательщик регистрируются в parties и в релизе как отдельные поля не хранятся.
func applyFundingSource(rel models.Release, source models.FundingSource) (models.Release, error) {
	registry, err := NewPartyRegistry(rel.Parties)
	if err != nil {
		return models.Release{}, err
	}
	if source.Funder != nil {
		if _, err = registry.Add(*source.Funder, models.RoleFunder); err != nil {
			return models.Release{}, err
		}
	}
	if source.Payer != nil {
		if _, err = registry.Add(*source.Payer, models.RolePayer); err != nil {
			return models.Release{}, err
		}
	}
	rel.Title = source.Title
	rel.Planning = source.Planning
	rel.Tender = source.Tender
	rel.Parties = registry.Parties()
	return rel, nil
}

func budgetAmount(planning *models.Planning) (float64, bool) {
	if planning == nil || planning.Budget == nil || planning.Budget.Amount == nil {
		return 0, false
	}
	return planning.Budget.Amount.Amount, true
}

// withBudgetAmount возвращает копию планирования с новой суммой бюджета.
// Если сумма в бюджете не указана, планирование не меняется.
func withBudgetAmount(planning *models.Planning, total float64) *models.Planning {
	if _, ok := budgetAmount(planning); !ok {
		return planning
	}
	budget := *planning.Budget
	amount := *budget.Amount
	amount.Amount = total
	budget.Amount = &amount
	next := *planning
	next.Budget = &budget
	return &next
}
