package models

import "time"

// Release представляет неизменяемый снимок документа закупки.
type Release struct {
	OCID             string                 `json:"ocid"`
	ID               string                 `json:"id"`
	Date             time.Time              `json:"date"`
	Tag              []Tag                  `json:"tag"`
	InitiationType   string                 `json:"initiationType,omitempty"`
	Title            string                 `json:"title,omitempty"`
	Planning         *Planning              `json:"planning,omitempty"`
	Buyer            *OrganizationReference `json:"buyer,omitempty"`
	Tender           Tender                 `json:"tender"`
	Awards           []Award                `json:"awards,omitempty"`
	Bids             *Bids                  `json:"bids,omitempty"`
	Contracts        []Contract             `json:"contracts,omitempty"`
	Parties          []Organization         `json:"parties,omitempty"`
	RelatedProcesses []RelatedProcess       `json:"relatedProcesses,omitempty"`
	HasPrevNotice    bool                   `json:"hasPreviousNotice,omitempty"`
	PurposeOfNotice  *PurposeOfNotice       `json:"purposeOfNotice,omitempty"`
}

// Tender представляет секцию тендера релиза.
type Tender struct {
	ID                          string                 `json:"id,omitempty"`
	Title                       string                 `json:"title,omitempty"`
	Description                 string                 `json:"description,omitempty"`
	Status                      TenderStatus           `json:"status,omitempty"`
	StatusDetails               TenderStatusDetails    `json:"statusDetails,omitempty"`
	ProcuringEntity             *OrganizationReference `json:"procuringEntity,omitempty"`
	Lots                        []Lot                  `json:"lots,omitempty"`
	TenderPeriod                *Period                `json:"tenderPeriod,omitempty"`
	EnquiryPeriod               *Period                `json:"enquiryPeriod,omitempty"`
	StandstillPeriod            *Period                `json:"standstillPeriod,omitempty"`
	AwardPeriod                 *Period                `json:"awardPeriod,omitempty"`
	AuctionPeriod               *Period                `json:"auctionPeriod,omitempty"`
	HasEnquiries                bool                   `json:"hasEnquiries,omitempty"`
	Enquiries                   []Enquiry              `json:"enquiries,omitempty"`
	Documents                   []Document             `json:"documents,omitempty"`
	ProcurementMethodModalities []string               `json:"procurementMethodModalities,omitempty"`
	ElectronicAuctions          *ElectronicAuctions    `json:"electronicAuctions,omitempty"`
}

// Period описывает временное окно.
type Period struct {
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	MaxExtentDate  *time.Time `json:"maxExtentDate,omitempty"`
	DurationInDays int        `json:"durationInDays,omitempty"`
}

// Planning описывает бюджетное планирование документа.
type Planning struct {
	Rationale string  `json:"rationale,omitempty"`
	Budget    *Budget `json:"budget,omitempty"`
}

type Budget struct {
	ID                    string            `json:"id,omitempty"`
	Description           string            `json:"description,omitempty"`
	Period                *Period           `json:"period,omitempty"`
	Amount                *Value            `json:"amount,omitempty"`
	IsEuropeanUnionFunded bool              `json:"isEuropeanUnionFunded,omitempty"`
	BudgetBreakdown       []BudgetBreakdown `json:"budgetBreakdown,omitempty"`
}

// BudgetBreakdown ссылается на источник финансирования по его ocid.
type BudgetBreakdown struct {
	ID          string  `json:"id" validate:"required"`
	Description string  `json:"description,omitempty"`
	Amount      *Value  `json:"amount,omitempty"`
	Period      *Period `json:"period,omitempty"`
}

type Value struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Identifier описывает идентификатор организации в реестре (scheme + id).
type Identifier struct {
	Scheme    string `json:"scheme"`
	ID        string `json:"id"`
	LegalName string `json:"legalName,omitempty"`
	URI       string `json:"uri,omitempty"`
}

type Address struct {
	StreetAddress string `json:"streetAddress,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	Region        string `json:"region,omitempty"`
	Locality      string `json:"locality,omitempty"`
}

type ContactPoint struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	FaxNumber string `json:"faxNumber,omitempty"`
	URL       string `json:"url,omitempty"`
}

type Details struct {
	Scale string `json:"scale,omitempty"`
}

// OrganizationReference - ссылка на организацию из award, bid или tender.
type OrganizationReference struct {
	ID                    string        `json:"id" validate:"required"`
	Name                  string        `json:"name"`
	Identifier            *Identifier   `json:"identifier,omitempty"`
	AdditionalIdentifiers []Identifier  `json:"additionalIdentifiers,omitempty"`
	Address               *Address      `json:"address,omitempty"`
	ContactPoint          *ContactPoint `json:"contactPoint,omitempty"`
	Details               *Details      `json:"details,omitempty"`
}

// Organization - запись в реестре участников (parties) с набором ролей.
type Organization struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Identifier            *Identifier   `json:"identifier,omitempty"`
	AdditionalIdentifiers []Identifier  `json:"additionalIdentifiers,omitempty"`
	Address               *Address      `json:"address,omitempty"`
	ContactPoint          *ContactPoint `json:"contactPoint,omitempty"`
	Details               *Details      `json:"details,omitempty"`
	Roles                 []PartyRole   `json:"roles"`
}

// HasRole проверяет наличие роли у организации.
func (o Organization) HasRole(role PartyRole) bool {
	for _, r := range o.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Document struct {
	ID            string     `json:"id"`
	DocumentType  string     `json:"documentType,omitempty"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	URL           string     `json:"url,omitempty"`
	DatePublished *time.Time `json:"datePublished,omitempty"`
	RelatedLots   []string   `json:"relatedLots,omitempty"`
}

type Award struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title,omitempty"`
	Description   string                  `json:"description,omitempty"`
	Status        string                  `json:"status,omitempty"`
	StatusDetails string                  `json:"statusDetails,omitempty"`
	Date          *time.Time              `json:"date,omitempty"`
	Value         *Value                  `json:"value,omitempty"`
	Suppliers     []OrganizationReference `json:"suppliers,omitempty"`
	RelatedLots   []string                `json:"relatedLots,omitempty"`
	RelatedBid    string                  `json:"relatedBid,omitempty"`
	Documents     []Document              `json:"documents,omitempty"`
	Amendments    []Amendment             `json:"amendments,omitempty"`
}

type Lot struct {
	ID            string `json:"id"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	StatusDetails string `json:"statusDetails,omitempty"`
	Value         *Value `json:"value,omitempty"`
}

// Bids - секция предложений релиза.
type Bids struct {
	Details []Bid `json:"details,omitempty"`
}

type Bid struct {
	ID            string                  `json:"id"`
	Date          *time.Time              `json:"date,omitempty"`
	Status        string                  `json:"status,omitempty"`
	StatusDetails string                  `json:"statusDetails,omitempty"`
	Tenderers     []OrganizationReference `json:"tenderers,omitempty"`
	Value         *Value                  `json:"value,omitempty"`
	Documents     []Document              `json:"documents,omitempty"`
	RelatedLots   []string                `json:"relatedLots,omitempty"`
}

type Contract struct {
	ID            string      `json:"id"`
	AwardID       string      `json:"awardId,omitempty"`
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	Status        string      `json:"status,omitempty"`
	StatusDetails string      `json:"statusDetails,omitempty"`
	Date          *time.Time  `json:"date,omitempty"`
	Value         *Value      `json:"value,omitempty"`
	Milestones    []Milestone `json:"milestones,omitempty"`
	Amendments    []Amendment `json:"amendments,omitempty"`
	Documents     []Document  `json:"documents,omitempty"`
}

type Milestone struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title,omitempty"`
	Description           string         `json:"description,omitempty"`
	Type                  string         `json:"type,omitempty"`
	Status                string         `json:"status,omitempty"`
	DueDate               *time.Time     `json:"dueDate,omitempty"`
	DateMet               *time.Time     `json:"dateMet,omitempty"`
	DateModified          *time.Time     `json:"dateModified,omitempty"`
	RelatedItems          []string       `json:"relatedItems,omitempty"`
	RelatedParties        []RelatedParty `json:"relatedParties,omitempty"`
	AdditionalInformation string         `json:"additionalInformation,omitempty"`
}

type RelatedParty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Amendment - запись об изменении контракта.
type Amendment struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Rationale       string     `json:"rationale,omitempty"`
	Description     string     `json:"description,omitempty"`
	AmendsReleaseID string     `json:"amendsReleaseID,omitempty"`
	ReleaseID       string     `json:"releaseID,omitempty"`
	Documents       []Document `json:"documents,omitempty"`
}

type Enquiry struct {
	ID           string                 `json:"id" validate:"required"`
	Date         *time.Time             `json:"date,omitempty"`
	Author       *OrganizationReference `json:"author,omitempty"`
	Title        string                 `json:"title,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Answer       string                 `json:"answer,omitempty"`
	DateAnswered *time.Time             `json:"dateAnswered,omitempty"`
	RelatedItem  string                 `json:"relatedItem,omitempty"`
	RelatedLot   string                 `json:"relatedLot,omitempty"`
}

type ElectronicAuctions struct {
	Details []AuctionDetail `json:"details,omitempty"`
}

type AuctionDetail struct {
	ID            string          `json:"id" validate:"required"`
	RelatedLot    string          `json:"relatedLot,omitempty"`
	AuctionPeriod *Period         `json:"auctionPeriod,omitempty"`
	URL           string          `json:"url,omitempty"`
	Results       []AuctionResult `json:"electronicAuctionResult,omitempty"`
}

type AuctionResult struct {
	RelatedBid string `json:"relatedBid"`
	Value      *Value `json:"value,omitempty"`
}

// RelatedProcess - перекрёстная ссылка между документами одного процесса.
type RelatedProcess struct {
	ID           string               `json:"id"`
	Relationship []RelatedProcessType `json:"relationship"`
	Scheme       string               `json:"scheme"`
	Identifier   string               `json:"identifier"`
	URI          string               `json:"uri,omitempty"`
}

type PurposeOfNotice struct {
	IsACallForCompetition bool `json:"isACallForCompetition"`
}

// ReleaseEntity - строка хранилища: релиз вместе с ключами документа.
type ReleaseEntity struct {
	CPID        string
	OCID        string
	ReleaseID   string
	Stage       Stage
	Status      TenderStatus
	ReleaseDate time.Time
	PublishDate time.Time
	Release     Release
}

// DocumentKey идентифицирует документ внутри процесса.
type DocumentKey struct {
	CPID string `json:"cpid"`
	OCID string `json:"ocid"`
}

// Acknowledgement - ответ на обработанное событие.
type Acknowledgement struct {
	CPID    string        `json:"cpid"`
	OCID    string        `json:"ocid"`
	Updated []DocumentKey `json:"updated"`
}
