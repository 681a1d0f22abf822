package services

import (
	"testing"

	"github.com/senyabanana/notice-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRule_Policies(t *testing.T) {
	existing := []models.Lot{{ID: "L1", Status: "active"}, {ID: "L2", Status: "active"}}
	incoming := []models.Lot{{ID: "L2", Status: "cancelled"}, {ID: "L3", Status: "active"}}

	tests := []struct {
		name    string
		policy  MissingPolicy
		wantIDs []string
		wantErr models.ErrorKind
	}{
		{name: "insert", policy: InsertMissing, wantIDs: []string{"L1", "L2", "L3"}},
		{name: "skip", policy: SkipMissing, wantIDs: []string{"L1", "L2"}},
		{name: "reject", policy: RejectMissing, wantErr: models.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := lotMergeRule.With(tt.policy, nil)
			merged, err := rule.Apply(existing, incoming)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, models.IsKind(err, tt.wantErr))
				assert.Contains(t, err.Error(), "L3")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, idsOf(merged, lotID))
			assert.Equal(t, "cancelled", merged[1].Status)
		})
	}
}

func TestMergeRule_DoesNotMutateExisting(t *testing.T) {
	existing := []models.Lot{{ID: "L1", Status: "active"}}
	merged, err := lotStatusRule.Apply(existing, []models.StatusUpdate{{ID: "L1", Status: "cancelled"}})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", merged[0].Status)
	assert.Equal(t, "active", existing[0].Status)
}

func TestMergeRule_LastIncomingWins(t *testing.T) {
	merged, err := lotStatusRule.Apply(
		[]models.Lot{{ID: "L1"}},
		[]models.StatusUpdate{{ID: "L1", Status: "first"}, {ID: "L1", Status: "second"}},
	)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "second", merged[0].Status)
}

func TestMergeRule_PreservesUntouchedFields(t *testing.T) {
	value := &models.Value{Amount: 10, Currency: "EUR"}
	existing := []models.Lot{{ID: "L1", Title: "Paper", Description: "A4", Status: "active", StatusDetails: "empty", Value: value}}

	merged, err := lotStatusRule.Apply(existing, []models.StatusUpdate{{ID: "L1", Status: "unsuccessful", StatusDetails: "empty"}})
	require.NoError(t, err)

	want := existing[0]
	want.Status = "unsuccessful"
	assert.Equal(t, want, merged[0])
}

func TestMergeRule_EmptyResultIsNil(t *testing.T) {
	merged, err := lotStatusRule.Apply(nil, []models.StatusUpdate{{ID: "L1"}})
	require.NoError(t, err)
	assert.Nil(t, merged)
}

func TestMergeRule_UnknownIDInsertsExactlyOne(t *testing.T) {
	existing := []models.Award{{ID: "A1"}, {ID: "A2"}}
	merged, err := awardReplaceRule.Apply(existing, []models.Award{{ID: "A3"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "A3"}, idsOf(merged, awardID))
}

func TestDocumentPatchRule(t *testing.T) {
	published := eventDate
	existing := []models.Document{{ID: "D1", Title: "Offer", URL: "http://old"}, {ID: "D2", Title: "Price"}}
	merged, err := documentPatchRule.Apply(existing, []models.Document{
		{ID: "D1", Title: "ignored", URL: "http://new", DatePublished: &published},
		{ID: "D9", URL: "http://other"},
	})
	require.NoError(t, err)

	require.Len(t, merged, 2)
	assert.Equal(t, "Offer", merged[0].Title)
	assert.Equal(t, "http://new", merged[0].URL)
	assert.Equal(t, &published, merged[0].DatePublished)
	assert.Equal(t, existing[1], merged[1])
}

func TestContractActivationRule_ReplacesMilestones(t *testing.T) {
	existing := []models.Contract{{
		ID:         "C1",
		Title:      "Supply",
		Milestones: []models.Milestone{{ID: "M-old"}},
	}}
	merged, err := contractActivationRule.Apply(existing, []models.ContractUpdate{{
		ID:            "C1",
		Status:        "active",
		StatusDetails: "execution",
		Milestones: []models.Milestone{{
			ID:             "M1",
			Type:           "delivery",
			RelatedParties: []models.RelatedParty{{ID: "S1", Name: "Acme"}},
		}},
	}})
	require.NoError(t, err)

	require.Len(t, merged[0].Milestones, 1)
	assert.Equal(t, "M1", merged[0].Milestones[0].ID)
	assert.Equal(t, "Supply", merged[0].Title)
	assert.Equal(t, "active", merged[0].Status)
	assert.Equal(t, "M-old", existing[0].Milestones[0].ID)
}

func TestConvertAward_StripsSuppliers(t *testing.T) {
	award := convertAward(awardPayload("A1", supplier("S1", "Acme")))
	assert.Equal(t, []models.OrganizationReference{{ID: "S1", Name: "Acme"}}, award.Suppliers)
	assert.Len(t, award.Documents, 1)
	assert.Equal(t, "B1", award.RelatedBid)
}

func TestWithStartAndEndDate(t *testing.T) {
	end := seedDate
	prev := &models.Period{EndDate: &end, DurationInDays: 5}

	started := withStartDate(prev, eventDate)
	assert.Equal(t, eventDate, *started.StartDate)
	assert.Equal(t, seedDate, *started.EndDate)
	assert.Equal(t, 5, started.DurationInDays)
	assert.Nil(t, prev.StartDate)

	created := withEndDate(nil, eventDate)
	assert.Nil(t, created.StartDate)
	assert.Equal(t, eventDate, *created.EndDate)
}
