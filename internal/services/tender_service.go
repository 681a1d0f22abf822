package services

import (
	"context"

	"github.com/senyabanana/notice-service/internal/models"
)

const (
	relatedProcessScheme = "ocid"
	initiationTender     = "tender"
)

// TenderService обрабатывает события жизненного цикла тендера.
type TenderService struct {
	*ReleaseService
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(releases *ReleaseService) *TenderService {
	return &TenderService{ReleaseService: releases}
}

// TenderPeriodEnd фиксирует результаты приёма предложений.
func (s *TenderService) TenderPeriodEnd(ctx context.Context, ec models.EventContext, data models.TenderPeriodEndData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyTenderPeriodEnd(prev, data, st)
	})
}

// TenderPeriodEndAuction фиксирует окончание приёма предложений для закупки с аукционом.
func (s *TenderService) TenderPeriodEndAuction(ctx context.Context, ec models.EventContext, data models.TenderPeriodEndAuctionData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyTenderPeriodEndAuction(prev, data, st)
	})
}

// AuctionPeriodEnd фиксирует результаты аукциона.
func (s *TenderService) AuctionPeriodEnd(ctx context.Context, ec models.EventContext, data models.AuctionPeriodEndData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyAuctionPeriodEnd(prev, data, st)
	})
}

// SuspendTender приостанавливает тендер.
func (s *TenderService) SuspendTender(ctx context.Context, ec models.EventContext, data models.SuspendTenderData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		next := st.apply(prev)
		next.Tender.StatusDetails = data.TenderStatusDetails
		return next, nil
	})
}

// UnsuspendTender возобновляет тендер и публикует ответ на запрос разъяснений.
func (s *TenderService) UnsuspendTender(ctx context.Context, ec models.EventContext, data models.UnsuspendTenderData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyUnsuspendTender(prev, data, st)
	})
}

// AwardByBid обновляет award и предложение, по которому он принят.
func (s *TenderService) AwardByBid(ctx context.Context, ec models.EventContext, data models.AwardByBidData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyAwardByBid(prev, data, st)
	})
}

// AwardPeriodEnd завершает период рассмотрения предложений.
func (s *TenderService) AwardPeriodEnd(ctx context.Context, ec models.EventContext, data models.AwardPeriodEndData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		return applyAwardPeriodEnd(prev, data, st)
	})
}

// TenderUnsuccessful признаёт тендер несостоявшимся в мастер-документе и документе этапа.
func (s *TenderService) TenderUnsuccessful(ctx context.Context, ec models.EventContext, data models.TenderUnsuccessfulData) (*models.Acknowledgement, error) {
	msEntity, err := s.GetMS(ctx, ec.CPID)
	if err != nil {
		return nil, err
	}
	recordEntity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}

	ms := s.stampFor(msEntity.OCID, ec.ReleaseDate).apply(msEntity.Release, models.TagCompiled)
	ms.Tender.Status = models.TenderUnsuccessful
	ms.Tender.StatusDetails = models.DetailsEmpty

	record, err := applyTenderUnsuccessful(recordEntity.Release, data, s.stampFor(recordEntity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingFrom(msEntity, ms), pendingFrom(recordEntity, record))
}

// StandstillPeriod завершает период ожидания этапа PS или PQ.
func (s *TenderService) StandstillPeriod(ctx context.Context, ec models.EventContext, data models.StandstillPeriodData) (*models.Acknowledgement, error) {
	statusDetails, err := StandstillStatusDetails(ec.Stage)
	if err != nil {
		return nil, err
	}
	msEntity, err := s.GetMS(ctx, ec.CPID)
	if err != nil {
		return nil, err
	}
	recordEntity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}

	ms := s.stampFor(msEntity.OCID, ec.ReleaseDate).apply(msEntity.Release, models.TagCompiled)
	ms.Tender.StatusDetails = statusDetails

	lots, err := lotStatusRule.Apply(recordEntity.Release.Tender.Lots, data.Lots)
	if err != nil {
		return nil, err
	}
	record := s.stampFor(recordEntity.OCID, ec.ReleaseDate).apply(recordEntity.Release)
	record.Tender.StatusDetails = statusDetails
	if data.StandstillPeriod != nil {
		period := *data.StandstillPeriod
		record.Tender.StandstillPeriod = &period
	}
	record.Tender.Lots = lots
	return s.commit(ctx, ec, pendingFrom(msEntity, ms), pendingFrom(recordEntity, record))
}

// StartNewStage закрывает документ предыдущего этапа и создаёт документ этапа ec.Stage.
func (s *TenderService) StartNewStage(ctx context.Context, ec models.EventContext, data models.StartNewStageData) (*models.Acknowledgement, error) {
	params, err := NextStageParams(ec.Stage)
	if err != nil {
		return nil, err
	}
	prevRelation, err := PreviousStageRelation(ec.PrevStage)
	if err != nil {
		return nil, err
	}
	msEntity, err := s.GetMS(ctx, ec.CPID)
	if err != nil {
		return nil, err
	}
	prevEntity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
	if err != nil {
		return nil, err
	}

	newOCID := s.IDs.NewOCID(ec.CPID, ec.Stage)

	ms := s.stampFor(msEntity.OCID, ec.ReleaseDate).apply(msEntity.Release, models.TagCompiled)
	ms.Tender.StatusDetails = params.StatusDetails
	ms.RelatedProcesses = appendRelatedProcess(msEntity.Release.RelatedProcesses,
		s.relatedProcess(params.RelatedProcessType, newOCID))

	prev := s.stampFor(prevEntity.OCID, ec.ReleaseDate).apply(prevEntity.Release, models.TagCompiled)
	prev.Tender.Status = models.TenderComplete
	prev.Tender.StatusDetails = models.DetailsEmpty

	links := []models.RelatedProcess{
		s.relatedProcess(models.RelationParent, ec.CPID),
		s.relatedProcess(prevRelation, ec.OCID),
	}
	record, err := newStageRecord(prevEntity.Release, data, params, links, s.stampFor(newOCID, ec.ReleaseDate), newOCID)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, ec,
		pendingFrom(msEntity, ms),
		pendingFrom(prevEntity, prev),
		pendingRelease{stage: ec.Stage, release: record, publishDate: ec.ReleaseDate})
}

func appendRelatedProcess(existing []models.RelatedProcess, process models.RelatedProcess) []models.RelatedProcess {
	processes := make([]models.RelatedProcess, 0, len(existing)+1)
	processes = append(processes, existing...)
	return append(processes, process)
}

func applyTenderPeriodEnd(prev models.Release, data models.TenderPeriodEndData, st releaseStamp) (models.Release, error) {
	incomingBids, err := patchBidDocuments(data.Bids, data.Documents)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidMergeRule.Apply(bidDetails(prev.Bids), incomingBids)
	if err != nil {
		return models.Release{}, err
	}
	awards, err := awardReplaceRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	lots, err := lotMergeRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAward)
	if data.AwardPeriod != nil {
		period := *data.AwardPeriod
		next.Tender.AwardPeriod = &period
	}
	next.Tender.StatusDetails = data.TenderStatusDetails
	next.Tender.Lots = lots
	next.Bids = withBidDetails(prev.Bids, bids)
	next.Awards = awards
	return registerBidAndAwardParties(next)
}

func applyTenderPeriodEndAuction(prev models.Release, data models.TenderPeriodEndAuctionData, st releaseStamp) (models.Release, error) {
	awards, err := awardReplaceRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	lots, err := lotMergeRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}
	auctions, err := mergeElectronicAuctions(prev.Tender.ElectronicAuctions, data.ElectronicAuctions)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAward)
	next.Tender.Status = data.TenderStatus
	next.Tender.StatusDetails = data.TenderStatusDetails
	next.Tender.Lots = lots
	next.Tender.ElectronicAuctions = auctions
	next.Awards = awards
	return registerBidAndAwardParties(next)
}

func applyAuctionPeriodEnd(prev models.Release, data models.AuctionPeriodEndData, st releaseStamp) (models.Release, error) {
	auctions, err := mergeElectronicAuctions(prev.Tender.ElectronicAuctions, data.Tender.ElectronicAuctions)
	if err != nil {
		return models.Release{}, err
	}
	awards, err := awardReplaceRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	incomingBids, err := patchBidDocuments(data.Bids, data.Documents)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidMergeRule.Apply(bidDetails(prev.Bids), incomingBids)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAward)
	if data.AwardPeriod != nil {
		period := *data.AwardPeriod
		next.Tender.AwardPeriod = &period
	}
	if data.Tender.AuctionPeriod != nil {
		period := *data.Tender.AuctionPeriod
		next.Tender.AuctionPeriod = &period
	}
	next.Tender.StatusDetails = data.TenderStatusDetails
	next.Tender.ElectronicAuctions = auctions
	next.Awards = awards
	next.Bids = withBidDetails(prev.Bids, bids)
	return registerBidAndAwardParties(next)
}

func applyUnsuspendTender(prev models.Release, data models.UnsuspendTenderData, st releaseStamp) (models.Release, error) {
	enquiries, err := enquiryAnswerRule.Apply(prev.Tender.Enquiries, []models.Enquiry{data.Enquiry})
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev)
	tender := data.Tender
	next.Tender.StatusDetails = tender.StatusDetails
	if tender.TenderPeriod != nil {
		period := *tender.TenderPeriod
		next.Tender.TenderPeriod = &period
	}
	if tender.EnquiryPeriod != nil {
		period := *tender.EnquiryPeriod
		next.Tender.EnquiryPeriod = &period
	}
	if tender.AuctionPeriod != nil {
		period := *tender.AuctionPeriod
		next.Tender.AuctionPeriod = &period
	}
	if tender.ProcurementMethodModalities != nil {
		next.Tender.ProcurementMethodModalities = append([]string(nil), tender.ProcurementMethodModalities...)
	}
	if tender.ElectronicAuctions != nil {
		auctions := models.ElectronicAuctions{Details: append([]models.AuctionDetail(nil), tender.ElectronicAuctions.Details...)}
		next.Tender.ElectronicAuctions = &auctions
	}
	next.Tender.Enquiries = enquiries
	return next, nil
}

func applyTenderUnsuccessful(prev models.Release, data models.TenderUnsuccessfulData, st releaseStamp) (models.Release, error) {
	lots, err := lotStatusRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidStatusDateRule.Apply(bidDetails(prev.Bids), data.Bids)
	if err != nil {
		return models.Release{}, err
	}
	awardRule := awardStatusDateRule
	if prev.Awards == nil {
		awardRule = awardRule.With(InsertMissing, nil)
	}
	awards, err := awardRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagTenderCancellation)
	next.Tender.Status = models.TenderUnsuccessful
	next.Tender.StatusDetails = models.DetailsEmpty
	next.Tender.Lots = lots
	next.Bids = withBidDetails(prev.Bids, bids)
	next.Awards = awards
	if data.AwardPeriod != nil {
		period := *data.AwardPeriod
		next.Tender.AwardPeriod = &period
	}
	return next, nil
}

func applyAwardByBid(prev models.Release, data models.AwardByBidData, st releaseStamp) (models.Release, error) {
	awards, err := awardDecisionRule.Apply(prev.Awards, []models.AwardDecision{data.Award})
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidDecisionRule.Apply(bidDetails(prev.Bids), []models.StatusUpdate{data.Bid})
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAwardUpdate)
	next.Awards = awards
	next.Bids = withBidDetails(prev.Bids, bids)
	return next, nil
}

func applyAwardPeriodEnd(prev models.Release, data models.AwardPeriodEndData, st releaseStamp) (models.Release, error) {
	lots, err := lotStatusRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}
	awards, err := awardStatusDateRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidStatusDateRule.Apply(bidDetails(prev.Bids), data.Bids)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev)
	next.Tender.StatusDetails = models.DetailsComplete
	if data.AwardPeriod != nil {
		period := *data.AwardPeriod
		next.Tender.AwardPeriod = &period
	}
	next.Tender.Lots = lots
	next.Awards = awards
	next.Bids = withBidDetails(prev.Bids, bids)
	return registerBidAndAwardParties(next)
}

// newStageRecord создаёт первый релиз документа нового этапа.
func newStageRecord(prev models.Release, data models.StartNewStageData, params StageParams, links []models.RelatedProcess, st releaseStamp, ocid string) (models.Release, error) {
	tender := data.Tender
	tender.Title = params.Title
	tender.Description = params.Description
	documents, err := documentPatchRule.Apply(tender.Documents, prev.Tender.Documents)
	if err != nil {
		return models.Release{}, err
	}
	tender.Documents = documents

	record := models.Release{
		OCID:             ocid,
		InitiationType:   initiationTender,
		Tender:           tender,
		Bids:             data.Bids,
		RelatedProcesses: links,
		HasPrevNotice:    prev.HasPrevNotice,
		PurposeOfNotice:  prev.PurposeOfNotice,
	}
	record = st.apply(record, models.TagCompiled)

	registry, err := NewPartyRegistry(nil)
	if err != nil {
		return models.Release{}, err
	}
	if tender.ProcuringEntity != nil {
		entity, err := registry.Add(*tender.ProcuringEntity, models.RoleProcuringEntity)
		if err != nil {
			return models.Release{}, err
		}
		record.Tender.ProcuringEntity = &entity
	}
	if record.Bids, err = registerTenderers(registry, record.Bids); err != nil {
		return models.Release{}, err
	}
	record.Parties = registry.Parties()
	return record, nil
}

// mergeElectronicAuctions обновляет записи аукционов по id. Записи, которых нет в запросе, не меняются.
func mergeElectronicAuctions(prev *models.ElectronicAuctions, incoming models.ElectronicAuctions) (*models.ElectronicAuctions, error) {
	if prev == nil || len(prev.Details) == 0 {
		return prev, nil
	}
	details, err := auctionDetailRule.Apply(prev.Details, incoming.Details)
	if err != nil {
		return nil, err
	}
	return &models.ElectronicAuctions{Details: details}, nil
}

// registerBidAndAwardParties регистрирует участников предложений и поставщиков awards.
func registerBidAndAwardParties(rel models.Release) (models.Release, error) {
	registry, err := NewPartyRegistry(rel.Parties)
	if err != nil {
		return models.Release{}, err
	}
	if rel.Bids, err = registerTenderers(registry, rel.Bids); err != nil {
		return models.Release{}, err
	}
	if rel.Awards, err = registerSuppliers(registry, rel.Awards); err != nil {
		return models.Release{}, err
	}
	rel.Parties = registry.Parties()
	return rel, nil
}

// CreateCN открывает процесс закупки: мастер-документ и документ этапа ec.Stage.
func (s *TenderService) CreateCN(ctx context.Context, ec models.EventContext, data models.CreateNoticeData) (*models.Acknowledgement, error) {
	return s.createProcess(ctx, ec, OperationCreateCN, data)
}

// CreatePN открывает процесс с планом закупки.
func (s *TenderService) CreatePN(ctx context.Context, ec models.EventContext, data models.CreateNoticeData) (*models.Acknowledgement, error) {
	return s.createProcess(ctx, ec, OperationCreatePN, data)
}

// CreatePIN открывает процесс с предварительным уведомлением.
func (s *TenderService) CreatePIN(ctx context.Context, ec models.EventContext, data models.CreateNoticeData) (*models.Acknowledgement, error) {
	return s.createProcess(ctx, ec, OperationCreatePIN, data)
}

// createProcess сохраняет первые релизы мастер-документа и документа этапа.
// В ответе ocid нового документа этапа.
func (s *TenderService) createProcess(ctx context.Context, ec models.EventContext, operation Operation, data models.CreateNoticeData) (*models.Acknowledgement, error) {
	params, err := ParamsForCreate(operation, ec.Stage)
	if err != nil {
		return nil, err
	}
	if ec.OCID != ec.CPID {
		return nil, models.NewInvalidInputError("process '" + ec.CPID + "' must be created with the master document ocid")
	}
	if data.Tender.ProcuringEntity == nil {
		return nil, models.NewInvalidInputError("tender.procuringEntity is required")
	}
	if err := s.ensureAbsent(ctx, ec.CPID, ec.CPID); err != nil {
		return nil, err
	}

	stage := models.NormalizeStage(ec.Stage)
	ocid := s.IDs.NewOCID(ec.CPID, stage)

	ms, err := newMasterRecord(ec.CPID, data, params, s.relatedProcess(params.RelatedProcessType, ocid), s.stampFor(ec.CPID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	record := newNoticeRecord(ocid, data, params, s.relatedProcess(models.RelationParent, ec.CPID), s.stampFor(ocid, ec.ReleaseDate))

	return s.commitAs(ctx, ec.CPID, ocid,
		pendingRelease{stage: models.StageMS, release: ms, publishDate: ec.ReleaseDate},
		pendingRelease{stage: stage, release: record, publishDate: ec.ReleaseDate})
}

// newMasterRecord собирает первый релиз мастер-документа. Организации из запроса
// переносятся в parties, в тендере остаются только ссылки на них.
func newMasterRecord(cpid string, data models.CreateNoticeData, params CreateParams, link models.RelatedProcess, st releaseStamp) (models.Release, error) {
	registry, err := NewPartyRegistry(nil)
	if err != nil {
		return models.Release{}, err
	}
	procuringEntity, err := registry.Add(*data.Tender.ProcuringEntity, models.RoleProcuringEntity)
	if err != nil {
		return models.Release{}, err
	}
	buyers, err := registry.AddAll(data.Buyers, models.RoleBuyer)
	if err != nil {
		return models.Release{}, err
	}
	if _, err = registry.AddAll(data.Payers, models.RolePayer); err != nil {
		return models.Release{}, err
	}
	if _, err = registry.AddAll(data.Funders, models.RoleFunder); err != nil {
		return models.Release{}, err
	}

	ms := models.Release{
		OCID:           cpid,
		InitiationType: initiationTender,
		Title:          data.Title,
		Planning:       data.Planning,
		Tender: models.Tender{
			ID:                          data.Tender.ID,
			Title:                       data.Tender.Title,
			Description:                 data.Tender.Description,
			Status:                      params.Status,
			StatusDetails:               params.StatusDetails,
			ProcuringEntity:             &procuringEntity,
			ProcurementMethodModalities: data.Tender.ProcurementMethodModalities,
		},
		Parties:          registry.Parties(),
		RelatedProcesses: []models.RelatedProcess{link},
		PurposeOfNotice:  &models.PurposeOfNotice{IsACallForCompetition: params.IsACallForCompetition},
	}
	if len(buyers) > 0 {
		ms.Buyer = &buyers[0]
	}
	return st.apply(ms, params.Tag), nil
}

// newNoticeRecord собирает первый релиз документа этапа.
func newNoticeRecord(ocid string, data models.CreateNoticeData, params CreateParams, link models.RelatedProcess, st releaseStamp) models.Release {
	tender := data.Tender
	tender.ProcuringEntity = nil
	tender.Status = params.Status
	tender.StatusDetails = params.StatusDetails
	if tender.Title == "" {
		tender.Title = params.Title
	}
	if tender.Description == "" {
		tender.Description = params.Description
	}

	record := models.Release{
		OCID:             ocid,
		InitiationType:   initiationTender,
		Tender:           tender,
		RelatedProcesses: []models.RelatedProcess{link},
		HasPrevNotice:    data.HasPrevNotice,
		PurposeOfNotice:  &models.PurposeOfNotice{IsACallForCompetition: params.IsACallForCompetition},
	}
	return st.apply(record, params.Tag)
}
