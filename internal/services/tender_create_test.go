package services

import (
	"context"
	"testing"

	"github.com/senyabanana/notice-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createFunc func(*TenderService, context.Context, models.EventContext, models.CreateNoticeData) (*models.Acknowledgement, error)

func createNoticeData() models.CreateNoticeData {
	procuringEntity := supplier("PE1", "Ministry")
	return models.CreateNoticeData{
		Title:    "Office supplies",
		Planning: &models.Planning{Budget: &models.Budget{Amount: &models.Value{Amount: 1000, Currency: "EUR"}}},
		Tender: models.Tender{
			ID:              "tender-1",
			Title:           "Paper and ink",
			ProcuringEntity: &procuringEntity,
			Lots:            []models.Lot{{ID: "L1", Title: "Paper", Status: "active"}},
		},
		Buyers:  []models.OrganizationReference{supplier("PE1", "Ministry")},
		Payers:  []models.OrganizationReference{supplier("P1", "Treasury")},
		Funders: []models.OrganizationReference{supplier("P1", "Treasury")},
	}
}

func TestTenderService_CreateCN(t *testing.T) {
	f := newFixture()
	service := NewTenderService(f.releases)
	newOCID := testCPID + "-EV-1709287200000"

	ack, err := service.CreateCN(f.ctx, eventContext(models.StageEV, testCPID), createNoticeData())
	require.NoError(t, err)
	assert.Equal(t, newOCID, ack.OCID)
	assert.Equal(t, []models.DocumentKey{
		{CPID: testCPID, OCID: testCPID},
		{CPID: testCPID, OCID: newOCID},
	}, ack.Updated)
	assert.Equal(t, 2, f.repo.Count())

	ms := f.latest(t, testCPID)
	assert.Equal(t, models.StageMS, ms.Stage)
	assert.Equal(t, eventDate, ms.PublishDate)
	assert.Equal(t, expectedReleaseID(testCPID), ms.Release.ID)
	assert.Equal(t, []models.Tag{models.TagTender}, ms.Release.Tag)
	assert.Equal(t, models.TenderActive, ms.Release.Tender.Status)
	assert.Equal(t, models.DetailsEvaluation, ms.Release.Tender.StatusDetails)
	assert.Equal(t, &models.OrganizationReference{ID: "PE1", Name: "Ministry"}, ms.Release.Tender.ProcuringEntity)
	assert.Equal(t, &models.OrganizationReference{ID: "PE1", Name: "Ministry"}, ms.Release.Buyer)
	assert.Empty(t, ms.Release.Tender.Lots)
	assert.True(t, ms.Release.PurposeOfNotice.IsACallForCompetition)
	assert.Equal(t, 1000.0, ms.Release.Planning.Budget.Amount.Amount)

	require.Equal(t, []string{"PE1", "P1"}, partyIDs(ms.Release.Parties))
	assert.Equal(t, []models.PartyRole{models.RoleProcuringEntity, models.RoleBuyer}, ms.Release.Parties[0].Roles)
	assert.Equal(t, []models.PartyRole{models.RolePayer, models.RoleFunder}, ms.Release.Parties[1].Roles)
	assert.Equal(t, "PE1-idno", ms.Release.Parties[0].Identifier.ID)

	require.Len(t, ms.Release.RelatedProcesses, 1)
	assert.Equal(t, []models.RelatedProcessType{models.RelationEvaluation}, ms.Release.RelatedProcesses[0].Relationship)
	assert.Equal(t, newOCID, ms.Release.RelatedProcesses[0].Identifier)

	record := f.latest(t, newOCID)
	assert.Equal(t, models.StageEV, record.Stage)
	assert.Equal(t, eventDate, record.PublishDate)
	assert.Equal(t, expectedReleaseID(newOCID), record.Release.ID)
	assert.Equal(t, []models.Tag{models.TagTender}, record.Release.Tag)
	assert.Equal(t, "Paper and ink", record.Release.Tender.Title)
	assert.Equal(t, models.DetailsEvaluation, record.Release.Tender.StatusDetails)
	assert.Nil(t, record.Release.Tender.ProcuringEntity)
	assert.Nil(t, record.Release.Parties)
	assert.Equal(t, []string{"L1"}, idsOf(record.Release.Tender.Lots, lotID))
	require.Len(t, record.Release.RelatedProcesses, 1)
	assert.Equal(t, []models.RelatedProcessType{models.RelationParent}, record.Release.RelatedProcesses[0].Relationship)
	assert.Equal(t, testCPID, record.Release.RelatedProcesses[0].Identifier)
}

func TestTenderService_CreateCNThenLifecycleEvents(t *testing.T) {
	f := newFixture()
	service := NewTenderService(f.releases)

	ack, err := service.CreateCN(f.ctx, eventContext(models.StagePQ, testCPID), createNoticeData())
	require.NoError(t, err)

	_, err = service.SuspendTender(f.ctx, eventContext(models.StagePQ, ack.OCID),
		models.SuspendTenderData{TenderStatusDetails: models.DetailsSuspended})
	require.NoError(t, err)
	assert.Equal(t, models.DetailsSuspended, f.latest(t, ack.OCID).Release.Tender.StatusDetails)

	_, err = service.StandstillPeriod(f.ctx, eventContext(models.StagePQ, ack.OCID), models.StandstillPeriodData{})
	require.NoError(t, err)
	assert.Equal(t, models.DetailsPrequalified, f.latest(t, testCPID).Release.Tender.StatusDetails)
	assert.Equal(t, 5, f.repo.Count())
}

func TestTenderService_CreatePlanningNotices(t *testing.T) {
	tests := []struct {
		name         string
		create       createFunc
		stage        models.Stage
		wantOCID     string
		wantStatus   models.TenderStatus
		wantDetails  models.TenderStatusDetails
		wantRelation models.RelatedProcessType
	}{
		{
			name:         "planning notice",
			create:       (*TenderService).CreatePN,
			stage:        models.StagePN,
			wantOCID:     testCPID + "-PN-1709287200000",
			wantStatus:   models.TenderPlanning,
			wantDetails:  models.DetailsPlanningNotice,
			wantRelation: models.RelationPlanning,
		},
		{
			name:         "prior notice with lower case stage",
			create:       (*TenderService).CreatePIN,
			stage:        "pin",
			wantOCID:     testCPID + "-PIN-1709287200000",
			wantStatus:   models.TenderPlanned,
			wantDetails:  models.DetailsPriorNotice,
			wantRelation: models.RelationPlanned,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			service := NewTenderService(f.releases)

			ack, err := tt.create(service, f.ctx, eventContext(tt.stage, testCPID), createNoticeData())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOCID, ack.OCID)

			ms := f.latest(t, testCPID).Release
			assert.Equal(t, []models.Tag{models.TagPlanning}, ms.Tag)
			assert.Equal(t, tt.wantStatus, ms.Tender.Status)
			assert.False(t, ms.PurposeOfNotice.IsACallForCompetition)
			assert.Equal(t, []models.RelatedProcessType{tt.wantRelation}, ms.RelatedProcesses[0].Relationship)

			record := f.latest(t, tt.wantOCID)
			assert.Equal(t, models.NormalizeStage(tt.stage), record.Stage)
			assert.Equal(t, tt.wantDetails, record.Release.Tender.StatusDetails)
			assert.Equal(t, []models.Tag{models.TagPlanning}, record.Release.Tag)
		})
	}
}

func TestTenderService_CreateProcessErrors(t *testing.T) {
	withoutProcuringEntity := createNoticeData()
	withoutProcuringEntity.Tender.ProcuringEntity = nil

	tests := []struct {
		name     string
		create   createFunc
		ec       models.EventContext
		data     models.CreateNoticeData
		existing bool
		wantKind models.ErrorKind
	}{
		{
			name:     "contract notice on planning stage",
			create:   (*TenderService).CreateCN,
			ec:       eventContext(models.StagePN, testCPID),
			data:     createNoticeData(),
			wantKind: models.KindUnsupportedRoute,
		},
		{
			name:     "planning notice on evaluation stage",
			create:   (*TenderService).CreatePN,
			ec:       eventContext(models.StageEV, testCPID),
			data:     createNoticeData(),
			wantKind: models.KindUnsupportedRoute,
		},
		{
			name:     "stage document ocid",
			create:   (*TenderService).CreateCN,
			ec:       eventContext(models.StageEV, evOCID),
			data:     createNoticeData(),
			wantKind: models.KindInvalidInput,
		},
		{
			name:     "no procuring entity",
			create:   (*TenderService).CreateCN,
			ec:       eventContext(models.StageEV, testCPID),
			data:     withoutProcuringEntity,
			wantKind: models.KindInvalidInput,
		},
		{
			name:     "process already exists",
			create:   (*TenderService).CreatePIN,
			ec:       eventContext(models.StagePIN, testCPID),
			data:     createNoticeData(),
			existing: true,
			wantKind: models.KindInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.existing {
				f.seed(t, models.StageMS, msRelease())
			}
			service := NewTenderService(f.releases)

			_, err := tt.create(service, f.ctx, tt.ec, tt.data)
			assert.True(t, models.IsKind(err, tt.wantKind), "got %v", err)
			if tt.existing {
				assert.Equal(t, 1, f.repo.Count())
			} else {
				assert.Equal(t, 0, f.repo.Count())
			}
		})
	}
}
