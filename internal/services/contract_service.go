package services

import (
	"context"

	"github.com/senyabanana/notice-service/internal/models"
)

// ContractService обрабатывает события по контрактам.
type ContractService struct {
	*ReleaseService
}

// NewContractService создаёт новый экземпляр ContractService.
func NewContractService(releases *ReleaseService) *ContractService {
	return &ContractService{ReleaseService: releases}
}

// ActivateContract активирует контракт и переносит статусы в документ оценки.
func (s *ContractService) ActivateContract(ctx context.Context, ec models.EventContext, data models.ActivateContractData) (*models.Acknowledgement, error) {
	contractEntity, err := s.GetRecord(ctx, ec.CPID, ec.OCID)
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

	contract, err := applyContractUpdate(contractEntity.Release, data.Contract, s.stampFor(contractEntity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	record, err := applyActivationRecord(recordEntity.Release, data, s.stampFor(recordEntity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, ec, pendingFrom(contractEntity, contract), pendingFrom(recordEntity, record))
}

// CancelCAN отменяет контракт (CAN) и добавляет к нему поправку,
// ссылающуюся на предыдущий релиз документа.
func (s *ContractService) CancelCAN(ctx context.Context, ec models.EventContext, data models.CancelCANData) (*models.Acknowledgement, error) {
	return s.updateRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		request := data.CancelledCAN.Amendment
		amendment := models.Amendment{
			ID:              s.IDs.NewAmendmentID(),
			Date:            ec.ReleaseDate,
			Rationale:       request.Rationale,
			Description:     request.Description,
			AmendsReleaseID: prev.ID,
		}
		if request.Documents != nil {
			amendment.Documents = append([]models.Document(nil), request.Documents...)
		}
		return applyCancelCAN(prev, data, amendment, st)
	})
}

func applyActivationRecord(prev models.Release, data models.ActivateContractData, st releaseStamp) (models.Release, error) {
	lots, err := lotStatusRule.Apply(prev.Tender.Lots, data.Lots)
	if err != nil {
		return models.Release{}, err
	}
	contracts, err := canStatusRule.Apply(prev.Contracts, data.CANs)
	if err != nil {
		return models.Release{}, err
	}
	awards, err := awardStatusRule.Apply(prev.Awards, data.Awards)
	if err != nil {
		return models.Release{}, err
	}
	bids, err := bidStatusRule.Apply(bidDetails(prev.Bids), data.Bids)
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagTenderUpdate)
	next.Tender.Lots = lots
	next.Contracts = contracts
	next.Awards = awards
	next.Bids = withBidDetails(prev.Bids, bids)
	return next, nil
}

func applyCancelCAN(prev models.Release, data models.CancelCANData, amendment models.Amendment, st releaseStamp) (models.Release, error) {
	cancelled := models.StatusUpdate{
		ID:            data.CancelledCAN.ID,
		Status:        data.CancelledCAN.Status,
		StatusDetails: data.CancelledCAN.StatusDetails,
	}
	contracts, err := contractCancellationRule(amendment).Apply(prev.Contracts, []models.StatusUpdate{cancelled})
	if err != nil {
		return models.Release{}, err
	}
	lots, err := lotStatusRule.Apply(prev.Tender.Lots, []models.StatusUpdate{data.Lot})
	if err != nil {
		return models.Release{}, err
	}

	next := st.apply(prev, models.TagAwardCancellation)
	next.Contracts = contracts
	next.Tender.Lots = lots
	return next, nil
}
