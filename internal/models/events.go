package models

import "time"

// EventContext описывает, к какому документу относится событие.
type EventContext struct {
	CPID        string            `json:"cpid" validate:"required"`
	OCID        string            `json:"ocid" validate:"required"`
	Stage       Stage             `json:"stage" validate:"required"`
	PrevStage   Stage             `json:"prevStage,omitempty"`
	PMD         ProcurementMethod `json:"pmd,omitempty"`
	ReleaseDate time.Time         `json:"startDate" validate:"required"`
}

// StatusUpdate - точечное обновление статуса сущности по её id.
type StatusUpdate struct {
	ID            string     `json:"id" validate:"required"`
	Status        string     `json:"status,omitempty"`
	StatusDetails string     `json:"statusDetails,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
}

// AwardPayload - award из запроса вместе с полной информацией о поставщиках.
type AwardPayload struct {
	ID            string                  `json:"id" validate:"required"`
	Description   string                  `json:"description,omitempty"`
	Status        string                  `json:"status,omitempty"`
	StatusDetails string                  `json:"statusDetails,omitempty"`
	Date          *time.Time              `json:"date,omitempty"`
	Value         *Value                  `json:"value,omitempty"`
	Suppliers     []OrganizationReference `json:"suppliers" validate:"dive"`
	RelatedLots   []string                `json:"relatedLots,omitempty"`
	RelatedBid    string                  `json:"relatedBid,omitempty"`
	Documents     []Document              `json:"documents,omitempty"`
}

type CreateAwardData struct {
	Award AwardPayload `json:"award"`
}

type StartAwardPeriodData struct {
	Award       AwardPayload `json:"award"`
	AwardPeriod struct {
		StartDate time.Time `json:"startDate" validate:"required"`
	} `json:"awardPeriod"`
	Tender struct {
		StatusDetails TenderStatusDetails `json:"statusDetails" validate:"required"`
	} `json:"tender"`
}

type EvaluateAwardData struct {
	Award AwardPayload `json:"award"`
}

// ContractUpdate - обновление контракта вместе с полной заменой milestones.
type ContractUpdate struct {
	ID            string      `json:"id" validate:"required"`
	Status        string      `json:"status"`
	StatusDetails string      `json:"statusDetails"`
	Milestones    []Milestone `json:"milestones,omitempty"`
}

type EndAwardPeriodData struct {
	AwardPeriod struct {
		StartDate *time.Time `json:"startDate,omitempty"`
		EndDate   time.Time  `json:"endDate" validate:"required"`
	} `json:"awardPeriod"`
	Tender struct {
		Status        TenderStatus        `json:"status" validate:"required"`
		StatusDetails TenderStatusDetails `json:"statusDetails" validate:"required"`
	} `json:"tender"`
	Lots     []StatusUpdate  `json:"lots,omitempty" validate:"dive"`
	Bids     []StatusUpdate  `json:"bids,omitempty" validate:"dive"`
	Awards   []StatusUpdate  `json:"awards,omitempty" validate:"dive"`
	CANs     []StatusUpdate  `json:"cans,omitempty" validate:"dive"`
	Contract *ContractUpdate `json:"contract,omitempty"`
}

type TenderPeriodEndData struct {
	AwardPeriod         *Period             `json:"awardPeriod,omitempty"`
	TenderStatusDetails TenderStatusDetails `json:"tenderStatusDetails" validate:"required"`
	Awards              []Award             `json:"awards,omitempty"`
	Lots                []Lot               `json:"lots,omitempty"`
	Bids                []Bid               `json:"bids,omitempty"`
	Documents           []Document          `json:"documents,omitempty"`
}

type TenderPeriodEndAuctionData struct {
	TenderStatus        TenderStatus        `json:"tenderStatus" validate:"required"`
	TenderStatusDetails TenderStatusDetails `json:"tenderStatusDetails" validate:"required"`
	Awards              []Award             `json:"awards,omitempty"`
	Lots                []Lot               `json:"lots,omitempty"`
	ElectronicAuctions  ElectronicAuctions  `json:"electronicAuctions"`
}

type AuctionPeriodEndData struct {
	AwardPeriod         *Period             `json:"awardPeriod,omitempty"`
	TenderStatusDetails TenderStatusDetails `json:"tenderStatusDetails" validate:"required"`
	Tender              struct {
		AuctionPeriod      *Period            `json:"auctionPeriod,omitempty"`
		ElectronicAuctions ElectronicAuctions `json:"electronicAuctions"`
	} `json:"tender"`
	Awards    []Award    `json:"awards,omitempty"`
	Bids      []Bid      `json:"bids,omitempty"`
	Documents []Document `json:"documents,omitempty"`
}

type SuspendTenderData struct {
	TenderStatusDetails TenderStatusDetails `json:"tenderStatusDetails" validate:"required"`
}

type UnsuspendTenderData struct {
	Tender struct {
		StatusDetails               TenderStatusDetails `json:"statusDetails" validate:"required"`
		TenderPeriod                *Period             `json:"tenderPeriod,omitempty"`
		EnquiryPeriod               *Period             `json:"enquiryPeriod,omitempty"`
		AuctionPeriod               *Period             `json:"auctionPeriod,omitempty"`
		ProcurementMethodModalities []string            `json:"procurementMethodModalities,omitempty"`
		ElectronicAuctions          *ElectronicAuctions `json:"electronicAuctions,omitempty"`
	} `json:"tender"`
	Enquiry Enquiry `json:"enquiry"`
}

type TenderUnsuccessfulData struct {
	Lots        []StatusUpdate `json:"lots,omitempty" validate:"dive"`
	Bids        []StatusUpdate `json:"bids,omitempty" validate:"dive"`
	Awards      []StatusUpdate `json:"awards,omitempty" validate:"dive"`
	AwardPeriod *Period        `json:"awardPeriod,omitempty"`
}

// AwardDecision - решение по award, принятое по результатам рассмотрения предложения.
type AwardDecision struct {
	ID            string     `json:"id" validate:"required"`
	Date          *time.Time `json:"date,omitempty"`
	Description   string     `json:"description,omitempty"`
	StatusDetails string     `json:"statusDetails,omitempty"`
	Documents     []Document `json:"documents,omitempty"`
}

type AwardByBidData struct {
	Award AwardDecision `json:"award"`
	Bid   StatusUpdate  `json:"bid"`
}

type AwardPeriodEndData struct {
	AwardPeriod *Period        `json:"awardPeriod,omitempty"`
	Lots        []StatusUpdate `json:"lots,omitempty" validate:"dive"`
	Awards      []StatusUpdate `json:"awards,omitempty" validate:"dive"`
	Bids        []StatusUpdate `json:"bids,omitempty" validate:"dive"`
}

type StandstillPeriodData struct {
	StandstillPeriod *Period        `json:"standstillPeriod,omitempty"`
	Lots             []StatusUpdate `json:"lots,omitempty" validate:"dive"`
}

type StartNewStageData struct {
	Tender Tender `json:"tender"`
	Bids   *Bids  `json:"bids,omitempty"`
}

type ActivateContractData struct {
	Contract ContractUpdate `json:"contract"`
	Lots     []StatusUpdate `json:"lots,omitempty" validate:"dive"`
	CANs     []StatusUpdate `json:"cans,omitempty" validate:"dive"`
	Awards   []StatusUpdate `json:"awards,omitempty" validate:"dive"`
	Bids     []StatusUpdate `json:"bids,omitempty" validate:"dive"`
}

type CancelCANData struct {
	CancelledCAN struct {
		ID            string `json:"id" validate:"required"`
		Status        string `json:"status"`
		StatusDetails string `json:"statusDetails"`
		Amendment     struct {
			Rationale   string     `json:"rationale,omitempty"`
			Description string     `json:"description,omitempty"`
			Documents   []Document `json:"documents,omitempty"`
		} `json:"amendment"`
	} `json:"cancelledCan"`
	Lot StatusUpdate `json:"lot"`
}

type EnquiryData struct {
	Enquiry Enquiry `json:"enquiry"`
}

// CreateNoticeData - данные события создания процесса закупки или плана.
type CreateNoticeData struct {
	Title         string                  `json:"title,omitempty"`
	Planning      *Planning               `json:"planning,omitempty"`
	Tender        Tender                  `json:"tender"`
	Buyers        []OrganizationReference `json:"buyers,omitempty" validate:"dive"`
	Payers        []OrganizationReference `json:"payers,omitempty" validate:"dive"`
	Funders       []OrganizationReference `json:"funders,omitempty" validate:"dive"`
	HasPrevNotice bool                    `json:"hasPreviousNotice,omitempty"`
}

// ExpenditureItemData - данные статьи расходов.
type ExpenditureItemData struct {
	Title    string                 `json:"title,omitempty"`
	Planning *Planning              `json:"planning,omitempty"`
	Tender   Tender                 `json:"tender"`
	Buyer    *OrganizationReference `json:"buyer,omitempty"`
}

// FundingSource - данные источника финансирования.
type FundingSource struct {
	Title    string                 `json:"title,omitempty"`
	Planning *Planning              `json:"planning,omitempty"`
	Tender   Tender                 `json:"tender"`
	Funder   *OrganizationReference `json:"funder,omitempty"`
	Payer    *OrganizationReference `json:"payer,omitempty"`
}

// BudgetTotal - пересчитанная сумма статьи расходов.
type BudgetTotal struct {
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
}

type FundingSourceData struct {
	FS FundingSource `json:"fs"`
	EI *BudgetTotal  `json:"ei,omitempty"`
}
