package services

import (
	"context"

	"github.com/senyabanana/notice-service/internal/models"
)

// EnquiryService обрабатывает запросы разъяснений в документе этапа.
type EnquiryService struct {
	*ReleaseService
}

// NewEnquiryService создаёт новый экземпляр EnquiryService.
func NewEnquiryService(releases *ReleaseService) *EnquiryService {
	return &EnquiryService{ReleaseService: releases}
}

// CreateEnquiry добавляет запрос или заменяет запрос с тем же id.
func (s *EnquiryService) CreateEnquiry(ctx context.Context, ec models.EventContext, data models.EnquiryData) (*models.Acknowledgement, error) {
	return s.updateStageRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		enquiries, err := enquiryUpsertRule.Apply(prev.Tender.Enquiries, []models.Enquiry{data.Enquiry})
		if err != nil {
			return models.Release{}, err
		}
		next := st.apply(prev)
		next.Tender.HasEnquiries = true
		next.Tender.Enquiries = enquiries
		return next, nil
	})
}

// AddAnswer публикует ответ на существующий запрос.
func (s *EnquiryService) AddAnswer(ctx context.Context, ec models.EventContext, data models.EnquiryData) (*models.Acknowledgement, error) {
	return s.updateStageRecord(ctx, ec, func(prev models.Release, st releaseStamp) (models.Release, error) {
		enquiries, err := enquiryAnswerRule.Apply(prev.Tender.Enquiries, []models.Enquiry{data.Enquiry})
		if err != nil {
			return models.Release{}, err
		}
		next := st.apply(prev)
		next.Tender.Enquiries = enquiries
		return next, nil
	})
}

// updateStageRecord работает с последним документом этапа ec.Stage, а не с ec.OCID.
func (s *EnquiryService) updateStageRecord(ctx context.Context, ec models.EventContext, transform func(models.Release, releaseStamp) (models.Release, error)) (*models.Acknowledgement, error) {
	entity, err := s.GetRecordByStage(ctx, ec.CPID, ec.Stage)
	if err != nil {
		return nil, err
	}
	release, err := transform(entity.Release, s.stampFor(entity.OCID, ec.ReleaseDate))
	if err != nil {
		return nil, err
	}
	ec.OCID = entity.OCID
	return s.commit(ctx, ec, pendingFrom(entity, release))
}
