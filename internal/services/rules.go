package services

import (
	"time"

	"github.com/senyabanana/notice-service/internal/models"
)

// Каталог правил слияния. Каждое правило явно перечисляет поля,
// которые событие может переписать у существующей сущности.

func lotID(l models.Lot) string                       { return l.ID }
func awardID(a models.Award) string                   { return a.ID }
func bidID(b models.Bid) string                       { return b.ID }
func contractID(c models.Contract) string             { return c.ID }
func documentID(d models.Document) string             { return d.ID }
func enquiryID(e models.Enquiry) string               { return e.ID }
func auctionID(d models.AuctionDetail) string         { return d.ID }
func updateID(u models.StatusUpdate) string           { return u.ID }
func awardPayloadID(a models.AwardPayload) string     { return a.ID }
func contractUpdateID(c models.ContractUpdate) string { return c.ID }

// lotStatusRule: status, statusDetails.
var lotStatusRule = MergeRule[models.Lot, models.StatusUpdate]{
	Entity:     "lot",
	ExistingID: lotID,
	IncomingID: updateID,
	Override: func(lot models.Lot, u models.StatusUpdate) models.Lot {
		lot.Status = u.Status
		lot.StatusDetails = u.StatusDetails
		return lot
	},
	Missing: SkipMissing,
}

// lotMergeRule: status, statusDetails; новые лоты добавляются целиком.
var lotMergeRule = MergeRule[models.Lot, models.Lot]{
	Entity:     "lot",
	ExistingID: lotID,
	IncomingID: lotID,
	Override: func(lot models.Lot, in models.Lot) models.Lot {
		lot.Status = in.Status
		lot.StatusDetails = in.StatusDetails
		return lot
	},
	Convert: func(in models.Lot) models.Lot { return in },
	Missing: InsertMissing,
}

// awardStatusRule: status, statusDetails.
var awardStatusRule = MergeRule[models.Award, models.StatusUpdate]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: updateID,
	Override: func(award models.Award, u models.StatusUpdate) models.Award {
		award.Status = u.Status
		award.StatusDetails = u.StatusDetails
		return award
	},
	Missing: SkipMissing,
}

// awardStatusDateRule: date, status, statusDetails.
var awardStatusDateRule = MergeRule[models.Award, models.StatusUpdate]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: updateID,
	Override: func(award models.Award, u models.StatusUpdate) models.Award {
		award.Date = u.Date
		award.Status = u.Status
		award.StatusDetails = u.StatusDetails
		return award
	},
	Convert: func(u models.StatusUpdate) models.Award {
		return models.Award{ID: u.ID, Date: u.Date, Status: u.Status, StatusDetails: u.StatusDetails}
	},
	Missing: SkipMissing,
}

// awardCreateRule: существующий award не меняется, новый добавляется
// с поставщиками, сокращёнными до id и name, без документов и relatedBid.
var awardCreateRule = MergeRule[models.Award, models.AwardPayload]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: awardPayloadID,
	Convert: func(in models.AwardPayload) models.Award {
		award := convertAward(in)
		award.Documents = nil
		award.RelatedBid = ""
		return award
	},
	Missing: InsertMissing,
}

// awardEvaluateRule: award полностью заменяется сконвертированным, включая документы.
// Award с новым id добавляется в конец списка, даже если список не пуст.
var awardEvaluateRule = MergeRule[models.Award, models.AwardPayload]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: awardPayloadID,
	Override: func(_ models.Award, in models.AwardPayload) models.Award {
		return convertAward(in)
	},
	Convert: convertAward,
	Missing: InsertMissing,
}

// awardReplaceRule: award из запроса заменяет сохранённый.
var awardReplaceRule = MergeRule[models.Award, models.Award]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: awardID,
	Override:   func(_ models.Award, in models.Award) models.Award { return in },
	Convert:    func(in models.Award) models.Award { return in },
	Missing:    InsertMissing,
}

// awardDecisionRule: date, description, statusDetails, documents, если переданы. Award обязан существовать.
var awardDecisionRule = MergeRule[models.Award, models.AwardDecision]{
	Entity:     "award",
	ExistingID: awardID,
	IncomingID: func(d models.AwardDecision) string { return d.ID },
	Override: func(award models.Award, d models.AwardDecision) models.Award {
		if d.Date != nil {
			award.Date = d.Date
		}
		if d.Description != "" {
			award.Description = d.Description
		}
		if d.StatusDetails != "" {
			award.StatusDetails = d.StatusDetails
		}
		if d.Documents != nil {
			award.Documents = append([]models.Document(nil), d.Documents...)
		}
		return award
	},
	Missing: RejectMissing,
}

// bidDecisionRule: date, statusDetails, если переданы. Предложение обязано существовать.
var bidDecisionRule = MergeRule[models.Bid, models.StatusUpdate]{
	Entity:     "bid",
	ExistingID: bidID,
	IncomingID: updateID,
	Override: func(bid models.Bid, u models.StatusUpdate) models.Bid {
		if u.Date != nil {
			bid.Date = u.Date
		}
		if u.StatusDetails != "" {
			bid.StatusDetails = u.StatusDetails
		}
		return bid
	},
	Missing: RejectMissing,
}

// bidStatusRule: status, statusDetails.
var bidStatusRule = MergeRule[models.Bid, models.StatusUpdate]{
	Entity:     "bid",
	ExistingID: bidID,
	IncomingID: updateID,
	Override: func(bid models.Bid, u models.StatusUpdate) models.Bid {
		bid.Status = u.Status
		bid.StatusDetails = u.StatusDetails
		return bid
	},
	Missing: SkipMissing,
}

// bidStatusDateRule: date, status, statusDetails.
var bidStatusDateRule = MergeRule[models.Bid, models.StatusUpdate]{
	Entity:     "bid",
	ExistingID: bidID,
	IncomingID: updateID,
	Override: func(bid models.Bid, u models.StatusUpdate) models.Bid {
		bid.Date = u.Date
		bid.Status = u.Status
		bid.StatusDetails = u.StatusDetails
		return bid
	},
	Missing: SkipMissing,
}

// bidMergeRule: date, status, statusDetails, documents; новые предложения добавляются целиком.
var bidMergeRule = MergeRule[models.Bid, models.Bid]{
	Entity:     "bid",
	ExistingID: bidID,
	IncomingID: bidID,
	Override: func(bid models.Bid, in models.Bid) models.Bid {
		bid.Date = in.Date
		bid.Status = in.Status
		bid.StatusDetails = in.StatusDetails
		if in.Documents != nil {
			bid.Documents = in.Documents
		}
		return bid
	},
	Convert: func(in models.Bid) models.Bid { return in },
	Missing: InsertMissing,
}

// canStatusRule: status, statusDetails у контрактов (CAN) документа оценки.
var canStatusRule = MergeRule[models.Contract, models.StatusUpdate]{
	Entity:     "contract",
	ExistingID: contractID,
	IncomingID: updateID,
	Override: func(contract models.Contract, u models.StatusUpdate) models.Contract {
		contract.Status = u.Status
		contract.StatusDetails = u.StatusDetails
		return contract
	},
	Missing: SkipMissing,
}

// contractActivationRule: status, statusDetails и полная замена milestones. Контракт обязан существовать.
var contractActivationRule = MergeRule[models.Contract, models.ContractUpdate]{
	Entity:     "contract",
	ExistingID: contractID,
	IncomingID: contractUpdateID,
	Override: func(contract models.Contract, u models.ContractUpdate) models.Contract {
		contract.Status = u.Status
		contract.StatusDetails = u.StatusDetails
		contract.Milestones = convertMilestones(u.Milestones)
		return contract
	},
	Missing: RejectMissing,
}

// contractCancellationRule: status, statusDetails и добавление поправки. Контракт обязан существовать.
func contractCancellationRule(amendment models.Amendment) MergeRule[models.Contract, models.StatusUpdate] {
	return MergeRule[models.Contract, models.StatusUpdate]{
		Entity:     "contract",
		ExistingID: contractID,
		IncomingID: updateID,
		Override: func(contract models.Contract, u models.StatusUpdate) models.Contract {
			contract.Status = u.Status
			contract.StatusDetails = u.StatusDetails
			amendments := make([]models.Amendment, 0, len(contract.Amendments)+1)
			amendments = append(amendments, contract.Amendments...)
			contract.Amendments = append(amendments, amendment)
			return contract
		},
		Missing: RejectMissing,
	}
}

// documentPatchRule: datePublished, url.
var documentPatchRule = MergeRule[models.Document, models.Document]{
	Entity:     "document",
	ExistingID: documentID,
	IncomingID: documentID,
	Override: func(doc models.Document, in models.Document) models.Document {
		doc.DatePublished = in.DatePublished
		doc.URL = in.URL
		return doc
	},
	Missing: SkipMissing,
}

// auctionDetailRule: запись аукциона из запроса заменяет сохранённую, отсутствующие в запросе не меняются.
var auctionDetailRule = MergeRule[models.AuctionDetail, models.AuctionDetail]{
	Entity:     "electronic auction",
	ExistingID: auctionID,
	IncomingID: auctionID,
	Override:   func(_ models.AuctionDetail, in models.AuctionDetail) models.AuctionDetail { return in },
	Missing:    SkipMissing,
}

// enquiryAnswerRule: answer, dateAnswered. Запрос обязан существовать.
var enquiryAnswerRule = MergeRule[models.Enquiry, models.Enquiry]{
	Entity:     "enquiry",
	ExistingID: enquiryID,
	IncomingID: enquiryID,
	Override: func(enquiry models.Enquiry, in models.Enquiry) models.Enquiry {
		enquiry.Answer = in.Answer
		enquiry.DateAnswered = in.DateAnswered
		return enquiry
	},
	Missing: RejectMissing,
}

// enquiryUpsertRule: запрос заменяется целиком или добавляется.
var enquiryUpsertRule = MergeRule[models.Enquiry, models.Enquiry]{
	Entity:     "enquiry",
	ExistingID: enquiryID,
	IncomingID: enquiryID,
	Override:   func(_ models.Enquiry, in models.Enquiry) models.Enquiry { return in },
	Convert:    func(in models.Enquiry) models.Enquiry { return in },
	Missing:    InsertMissing,
}

// convertAward переносит award из запроса, сокращая поставщиков до id и name.
func convertAward(in models.AwardPayload) models.Award {
	award := models.Award{
		ID:            in.ID,
		Description:   in.Description,
		Status:        in.Status,
		StatusDetails: in.StatusDetails,
		Date:          in.Date,
		RelatedBid:    in.RelatedBid,
	}
	if in.Value != nil {
		value := *in.Value
		award.Value = &value
	}
	if in.Suppliers != nil {
		award.Suppliers = make([]models.OrganizationReference, 0, len(in.Suppliers))
		for _, supplier := range in.Suppliers {
			award.Suppliers = append(award.Suppliers, StripReference(supplier))
		}
	}
	if len(in.RelatedLots) > 0 {
		award.RelatedLots = append([]string(nil), in.RelatedLots...)
	}
	if len(in.Documents) > 0 {
		award.Documents = append([]models.Document(nil), in.Documents...)
	}
	return award
}

func convertMilestones(milestones []models.Milestone) []models.Milestone {
	if milestones == nil {
		return nil
	}
	converted := make([]models.Milestone, 0, len(milestones))
	for _, m := range milestones {
		parties := make([]models.RelatedParty, 0, len(m.RelatedParties))
		for _, p := range m.RelatedParties {
			parties = append(parties, models.RelatedParty{ID: p.ID, Name: p.Name})
		}
		m.RelatedParties = parties
		if m.RelatedItems != nil {
			m.RelatedItems = append([]string(nil), m.RelatedItems...)
		}
		converted = append(converted, m)
	}
	return converted
}

// withStartDate возвращает копию окна с новой датой начала; отсутствующее окно создаётся.
func withStartDate(period *models.Period, start time.Time) *models.Period {
	updated := models.Period{}
	if period != nil {
		updated = *period
	}
	updated.StartDate = &start
	return &updated
}

// withEndDate возвращает копию окна с новой датой окончания; отсутствующее окно создаётся.
func withEndDate(period *models.Period, end time.Time) *models.Period {
	updated := models.Period{}
	if period != nil {
		updated = *period
	}
	updated.EndDate = &end
	return &updated
}

func patchBidDocuments(bids []models.Bid, documents []models.Document) ([]models.Bid, error) {
	if len(documents) == 0 || bids == nil {
		return bids, nil
	}
	patched := make([]models.Bid, 0, len(bids))
	for _, bid := range bids {
		docs, err := documentPatchRule.Apply(bid.Documents, documents)
		if err != nil {
			return nil, err
		}
		bid.Documents = docs
		patched = append(patched, bid)
	}
	return patched, nil
}

func bidDetails(bids *models.Bids) []models.Bid {
	if bids == nil {
		return nil
	}
	return bids.Details
}
