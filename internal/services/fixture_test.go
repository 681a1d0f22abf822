package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
	"github.com/senyabanana/notice-service/internal/repository"

	"github.com/stretchr/testify/require"
)

const (
	testCPID = "ocds-t1s2t3-MD-1565251033096"
	evOCID   = testCPID + "-EV-1565251033100"
	pqOCID   = testCPID + "-PQ-1565251033098"
	acOCID   = testCPID + "-AC-1565251033200"
)

var (
	fixedNow    = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	eventDate   = time.Date(2024, time.March, 1, 9, 59, 0, 0, time.UTC)
	seedDate    = time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
	publishDate = time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	ctx      context.Context
	repo     *repository.MemoryReleaseRepository
	releases *ReleaseService
}

func newFixture() *fixture {
	repo := repository.NewMemoryReleaseRepository()
	ids := NewIdentityGenerator(func() time.Time { return fixedNow })
	return &fixture{ctx: context.Background(), repo: repo, releases: NewReleaseService(repo, ids)}
}

func (f *fixture) seed(t *testing.T, stage models.Stage, rel models.Release) {
	t.Helper()
	require.NoError(t, f.repo.Save(f.ctx, models.ReleaseEntity{
		CPID:        testCPID,
		OCID:        rel.OCID,
		ReleaseID:   rel.ID,
		Stage:       stage,
		Status:      rel.Tender.Status,
		ReleaseDate: rel.Date,
		PublishDate: publishDate,
		Release:     rel,
	}))
}

func (f *fixture) latest(t *testing.T, ocid string) *models.ReleaseEntity {
	t.Helper()
	entity, err := f.repo.GetByOCID(f.ctx, testCPID, ocid)
	require.NoError(t, err)
	return entity
}

func expectedReleaseID(ocid string) string {
	return ocid + "-" + strconv.FormatInt(fixedNow.UnixMilli(), 10)
}

func eventContext(stage models.Stage, ocid string) models.EventContext {
	return models.EventContext{
		CPID:        testCPID,
		OCID:        ocid,
		Stage:       stage,
		PMD:         models.MethodOT,
		ReleaseDate: eventDate,
	}
}

func msRelease() models.Release {
	return models.Release{
		OCID: testCPID,
		ID:   testCPID + "-1",
		Date: seedDate,
		Tag:  []models.Tag{models.TagCompiled},
		Tender: models.Tender{
			ID:            "tender-ms",
			Status:        models.TenderActive,
			StatusDetails: models.DetailsEvaluation,
		},
		Parties: []models.Organization{
			{ID: "buyer-1", Name: "City Hall", Roles: []models.PartyRole{models.RoleBuyer}},
		},
	}
}

func evRelease() models.Release {
	return models.Release{
		OCID: evOCID,
		ID:   evOCID + "-1",
		Date: seedDate,
		Tag:  []models.Tag{models.TagTender},
		Tender: models.Tender{
			ID:            "tender-ev",
			Title:         "Evaluation",
			Status:        models.TenderActive,
			StatusDetails: models.DetailsEvaluation,
			Lots: []models.Lot{
				{ID: "L1", Title: "Paper", Status: "active", StatusDetails: "empty", Value: &models.Value{Amount: 100, Currency: "EUR"}},
				{ID: "L2", Title: "Ink", Status: "active", StatusDetails: "empty"},
			},
		},
	}
}

func contractRelease() models.Release {
	return models.Release{
		OCID: acOCID,
		ID:   acOCID + "-1",
		Date: seedDate,
		Tag:  []models.Tag{models.TagContract},
		Tender: models.Tender{
			ID:     "tender-ac",
			Status: models.TenderActive,
		},
		Contracts: []models.Contract{
			{ID: "C1", AwardID: "A1", Title: "Supply", Status: "pending", StatusDetails: "contractProject"},
		},
	}
}

func supplier(id, name string) models.OrganizationReference {
	return models.OrganizationReference{
		ID:         id,
		Name:       name,
		Identifier: &models.Identifier{Scheme: "MD-IDNO", ID: id + "-idno", LegalName: name + " LLC"},
		Address:    &models.Address{StreetAddress: "Main 1", Locality: "Chisinau"},
	}
}

func awardPayload(id string, suppliers ...models.OrganizationReference) models.AwardPayload {
	date := eventDate
	return models.AwardPayload{
		ID:            id,
		Description:   "award " + id,
		Status:        "pending",
		StatusDetails: "empty",
		Date:          &date,
		Value:         &models.Value{Amount: 99.5, Currency: "EUR"},
		Suppliers:     suppliers,
		RelatedLots:   []string{"L1"},
		RelatedBid:    "B1",
		Documents:     []models.Document{{ID: "doc-" + id, DocumentType: "evaluationReports"}},
	}
}

func idsOf[T any](items []T, id func(T) string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, id(item))
	}
	return result
}

func timePtr(t time.Time) *time.Time {
	return &t
}
