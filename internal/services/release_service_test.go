package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
	"github.com/senyabanana/notice-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepository отказывает на failOn-м сохранении.
type failingRepository struct {
	repository.ReleaseRepository
	failOn int
	saves  int
}

func (r *failingRepository) Save(ctx context.Context, entity models.ReleaseEntity) error {
	r.saves++
	if r.saves == r.failOn {
		return errors.New("connection reset by peer")
	}
	return r.ReleaseRepository.Save(ctx, entity)
}

// staleRepository отдаёт снимок документа, загруженный до последних сохранений.
type staleRepository struct {
	repository.ReleaseRepository
	snapshot *models.ReleaseEntity
}

func (r *staleRepository) GetByOCID(ctx context.Context, cpid, ocid string) (*models.ReleaseEntity, error) {
	if r.snapshot.CPID == cpid && r.snapshot.OCID == ocid {
		entity := *r.snapshot
		return &entity, nil
	}
	return r.ReleaseRepository.GetByOCID(ctx, cpid, ocid)
}

func TestReleaseService_SaveFailureKeepsEarlierDocuments(t *testing.T) {
	f := newFixture()
	seedEndAwardPeriod(t, f)
	saved := f.repo.Count()

	repo := &failingRepository{ReleaseRepository: f.repo, failOn: 2}
	service := NewAwardService(NewReleaseService(repo, f.releases.IDs))

	data := endAwardPeriodData()
	data.Contract = &models.ContractUpdate{ID: "C1", Status: "active", StatusDetails: "execution"}
	ack, err := service.EndAwardPeriod(f.ctx, eventContext(models.StageAC, acOCID), data)
	require.Error(t, err)
	assert.Nil(t, ack)
	assert.Equal(t, 2, repo.saves)

	assert.Equal(t, saved+1, f.repo.Count())
	ms := f.latest(t, testCPID)
	assert.Equal(t, expectedReleaseID(testCPID), ms.Release.ID)
	assert.Equal(t, models.DetailsExecution, ms.Release.Tender.StatusDetails)

	ev := f.latest(t, evOCID).Release
	assert.Equal(t, evOCID+"-1", ev.ID)
	assert.Equal(t, "pending", ev.Awards[0].Status)

	contract := f.latest(t, acOCID).Release
	assert.Equal(t, acOCID+"-1", contract.ID)
	assert.Equal(t, "pending", contract.Contracts[0].Status)
}

func TestReleaseService_LastWriteWins(t *testing.T) {
	f := newFixture()
	f.seed(t, models.StageEV, awardByBidRelease())
	snapshot := f.latest(t, evOCID)

	clock := fixedNow
	ids := NewIdentityGenerator(func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	})
	service := NewTenderService(NewReleaseService(&staleRepository{ReleaseRepository: f.repo, snapshot: snapshot}, ids))
	ec := eventContext(models.StageEV, evOCID)

	_, err := service.AwardByBid(f.ctx, ec, models.AwardByBidData{
		Award: models.AwardDecision{ID: "A1", StatusDetails: "active"},
		Bid:   models.StatusUpdate{ID: "B1", StatusDetails: "valid"},
	})
	require.NoError(t, err)
	assert.Equal(t, "active", f.latest(t, evOCID).Release.Awards[0].StatusDetails)

	_, err = service.SuspendTender(f.ctx, ec, models.SuspendTenderData{TenderStatusDetails: models.DetailsSuspended})
	require.NoError(t, err)

	assert.Equal(t, 3, f.repo.Count())
	latest := f.latest(t, evOCID).Release
	assert.Equal(t, models.DetailsSuspended, latest.Tender.StatusDetails)
	assert.Equal(t, "empty", latest.Awards[0].StatusDetails)
	assert.Equal(t, "empty", latest.Bids.Details[0].StatusDetails)
}

func TestReleaseService_EnsureAbsent(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.releases.ensureAbsent(f.ctx, testCPID, testCPID))

	f.seed(t, models.StageMS, msRelease())
	err := f.releases.ensureAbsent(f.ctx, testCPID, testCPID)
	assert.True(t, models.IsKind(err, models.KindInvalidInput))

	err = f.releases.ensureAbsent(f.ctx, testCPID, "other-process")
	assert.True(t, models.IsKind(err, models.KindInvalidInput))
}
