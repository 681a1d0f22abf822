package services

import (
	"context"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
)

// AwardService обрабатывает события по awards.
type AwardService struct {
	*ReleaseService
}

// NewAwardService создаёт новый экземпляр AwardService.
func NewAwardService(releases *ReleaseService) *AwardService {
	return &AwardService{ReleaseService: releases}
}

// CreateAward добавляет award в документ и регистрирует поставщиков.
func (s *AwardService) CreateAward(ctx context.Context, ec models.EventContext, data models.CreateAwardData) (*models.Acknowledgement, error) {
	entity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}
	release, err := applyCreateAward(entity.Release, data.Award, s.stampFor(ec.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingRelease{stage: entity.Stage, release: release, publishDate: ec.ReleaseDate})
}

// StartAwardPeriod добавляет award и открывает период рассмотрения.
func (s *AwardService) StartAwardPeriod(ctx context.Context, ec models.EventContext, data models.StartAwardPeriodData) (*models.Acknowledgement, error) {
	entity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}
	release, err := applyStartAwardPeriod(entity.Release, data, s.stampFor(ec.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingRelease{stage: entity.Stage, release: release, publishDate: ec.ReleaseDate})
}

// EvaluateAward заменяет award с тем же id результатом оценки.
func (s *AwardService) EvaluateAward(ctx context.Context, ec models.EventContext, data models.EvaluateAwardData) (*models.Acknowledgement, error) {
	entity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}
	release, err := applyEvaluateAward(entity.Release, data.Award, s.stampFor(ec.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingRelease{stage: entity.Stage, release: release, publishDate: ec.ReleaseDate})
}

// EndAwardPeriod обновляет мастер-документ, документ оценки и, если передан контракт,
// документ контракта. Все снимки вычисляются до первого сохранения.
func (s *AwardService) EndAwardPeriod(ctx context.Context, ec models.EventContext, data models.EndAwardPeriodData) (*models.Acknowledgement, error) {
	msEntity, err := s.GetMS(ctx, ec.CPID)
	if err != nil {
		return nil, err
	}
	recordStage, err := RecordStage(ec.PMD)
	if err != nil {
		return nil, err
	}
	recordEntity, err := s.GetRecordByStage(ctx, ec.CPID, recordStage)
	if err != nil {
		return nil, err
	}

	ms := applyEndAwardPeriodMS(msEntity.Release, s.stampFor(msEntity.OCID, ec.ReleaseDate))
	record, err := applyEndAwardPeriodRecord(recordEntity.Release, data, s.stampFor(recordEntity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	releases := []pendingRelease{pendingFrom(msEntity, ms), pendingFrom(recordEntity, record)}

	if data.Contract != nil {
		contractEntity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
		if err != nil {
			return nil, err
		}
		contract, err := applyContractUpdate(contractEntity.Release, *data.Contract, s.stampFor(contractEntity.OCID, ec.ReleaseDate))
		if err != nil {
			return nil, err
		}
		releases = append(releases, pendingFrom(contractEntity, contract))
	}
	return s.commit(ctx, ec, releases...)
}

func applyCreateAward(prev models.Release, award models.AwardPayload, st releaseStamp) (models.Release, error) {
	registry, err := NewPartyRegistry(prev.Parties)
	if err != nil {
		return models.Release{}, err
	}
	if _, err = registry.AddAll(award.Suppliers, models.RoleSupplier); err != nil {
		return models.Release{}, err
	}
	awards, err := awardCreateRule.Apply(prev.Awards, []models.AwardPayload{award})
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAward)
	next.Awards = awards
	next.Parties = registry.Parties()
	return next, nil
}

func applyStartAwardPeriod(prev models.Release, data models.StartAwardPeriodData, st releaseStamp) (models.Release, error) {
	next, err := applyCreateAward(prev, data.Award, st)
	if err != nil {
		return models.Release{}, err
	}
	next.Tender.StatusDetails = data.Tender.StatusDetails
	next.Tender.AwardPeriod = withStartDate(prev.Tender.AwardPeriod, data.AwardPeriod.StartDate)
	return next, nil
}

func applyEvaluateAward(prev models.Release, award models.AwardPayload, st releaseStamp) (models.Release, error) {
	awards, err := awardEvaluateRule.Apply(prev.Awards, []models.AwardPayload{award})
	if err != nil {
		return models.Release{}, err
	}
	next := st.apply(prev, models.TagAwardUpdate)
	next.Awards = awards
	return next, nil
}

func applyEndAwardPeriodMS(prev models.Release, st releaseStamp) models.Release {
	next := st.apply(prev, models.TagCompiled)
	next.Tender.StatusDetails = models.DetailsExecution
	return next
}

func applyEndAwardPeriodRecord(prev models.Release, data models.EndAwardPeriodData, st releaseStamp) (models.Release, error) {
	lots, err := lotStatusRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidStatusRule.Apply(bidDetails(prev.Bids), data.Bids)
	if err != nil {
		return models.Release{}, err
	}
	awards, err := awardStatusRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	contracts, err := canStatusRule.Apply(prev.Contracts, data.CANs)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagTenderUpdate)
	next.Tender.AwardPeriod = awardPeriodWindow(prev.Tender.AwardPeriod, data.AwardPeriod.StartDate, data.AwardPeriod.EndDate)
	next.Tender.Status = data.Tender.Status
	next.Tender.StatusDetails = data.Tender.StatusDetails
	next.Tender.Lots = lots
	next.Bids = withBidDetails(prev.Bids, bids)
	next.Awards = awards
	next.Contracts = contracts
	return next, nil
}

// awardPeriodWindow закрывает период датой end; дата начала меняется, только если передана.
func awardPeriodWindow(prev *models.Period, start *time.Time, end time.Time) *models.Period {
	period := withEndDate(prev, end)
	if start != nil {
		startDate := *start
		period.StartDate = &startDate
	}
	return period
}

func applyContractUpdate(prev models.Release, update models.ContractUpdate, st releaseStamp) (models.Release, error) {
	contracts, err := contractActivationRule.Apply(prev.Contracts, []models.ContractUpdate{update})
	if err != nil {
		return models.Release{}, err
	}
	next := st.apply(prev, models.TagContractUpdate)
	next.Contracts = contracts
	return next, nil
}
