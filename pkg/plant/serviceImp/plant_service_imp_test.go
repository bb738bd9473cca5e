package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourd/entities"
	"gourd/pkg/notify"
	"gourd/pkg/plant/repository"
	"gourd/pkg/plant/repositoryImp"
	"gourd/pkg/plant/service"
	"gourd/pkg/timing"
)

const uid = "user-1"

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newSvc(now time.Time) (service.PlantService, *repositoryImp.MemoryPlantRepo) {
	repo := repositoryImp.NewMemory()
	return NewWithClock(repo, fixedClock(now)), repo
}

func TestCreate(t *testing.T) {
	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)

	v, err := svc.Create(uid, service.CreateInput{
		Species:     entities.SpeciesAmpalaya,
		DatePlanted: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		InitialNote: "three seeds in the east plot",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPlanted, v.Status)
	assert.Equal(t, entities.GenderUndetermined, v.Gender)
	assert.Equal(t, "Bitter Gourd", v.DisplayName.English)
	assert.Equal(t, 30, v.AgeInDays)
	require.Len(t, v.Notes, 1)
	assert.Equal(t, entities.NoteObservation, v.Notes[0].Kind)
	require.NotNil(t, v.GenderDetection)
	assert.True(t, v.GenderDetection.CanDetectMale)
}

func TestCreateRejectsUnknownSpecies(t *testing.T) {
	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)

	_, err := svc.Create(uid, service.CreateInput{
		Species:     entities.Species("durian"),
		DatePlanted: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, s := range entities.AllSpecies {
		assert.Contains(t, verr.Error(), string(s))
	}
}

func TestCreateRejectsMissingDate(t *testing.T) {
	svc, _ := newSvc(time.Now())
	_, err := svc.Create(uid, service.CreateInput{Species: entities.SpeciesUpo})
	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
}

func seedPlant(t *testing.T, svc service.PlantService, s entities.Species, planted time.Time) uint {
	t.Helper()
	v, err := svc.Create(uid, service.CreateInput{Species: s, DatePlanted: planted})
	require.NoError(t, err)
	return v.PlantID
}

func TestMarkFloweringThenPollinated(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesUpo, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	v, err := svc.MarkFlowering(uid, id, entities.GenderFemale)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFlowering, v.Status)
	assert.Equal(t, entities.GenderFemale, v.Gender)

	v, err = svc.MarkPollinated(uid, id, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPollinated, v.Status)
	require.NotNil(t, v.DatePollinated)
	assert.Equal(t, now, *v.DatePollinated)
	require.NotNil(t, v.Timing)
	assert.Equal(t, 17, v.Timing.StartHour)
	assert.Equal(t, 20, v.Timing.EndHour)
}

func TestMarkFloweringInvalidGenderIsNoop(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesUpo, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	v, err := svc.MarkFlowering(uid, id, entities.Gender("both"))
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPlanted, v.Status)
	assert.Equal(t, entities.GenderUndetermined, v.Gender)
}

func TestMarkPollinatedRejectsDateBeforePlanting(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesUpo, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	early := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.MarkPollinated(uid, id, &early)
	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddNoteTooLong(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesPatola, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	long := make([]byte, entities.MaxNoteLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.AddNote(uid, id, string(long), entities.NoteProblem)
	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)

	n, err := svc.AddNote(uid, id, "aphids on the lower leaves", entities.NoteProblem)
	require.NoError(t, err)
	assert.Equal(t, entities.NoteProblem, n.Kind)
	assert.Equal(t, now, n.Date)
}

func TestOutcomeAdvancesToFruitingThenHarvest(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesKalabasa, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.MarkPollinated(uid, id, nil)
	require.NoError(t, err)

	_, err = svc.MarkHarvested(uid, id)
	require.Error(t, err, "cannot harvest before fruiting")

	v, err := svc.RecordOutcome(uid, id, entities.OutcomeSuccessful)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFruiting, v.Status)

	v, err = svc.MarkHarvested(uid, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusHarvested, v.Status)
}

func TestOwnerScoping(t *testing.T) {
	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesKundol, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Get("someone-else", id)
	assert.Error(t, err)
	assert.Error(t, svc.Delete("someone-else", id))

	require.NoError(t, svc.Delete(uid, id))
	_, err = svc.Get(uid, id)
	assert.Error(t, err)
}

func TestListFilterSortPage(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)

	jan := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	a := seedPlant(t, svc, entities.SpeciesAmpalaya, jan(1))
	b := seedPlant(t, svc, entities.SpeciesUpo, jan(10))
	c := seedPlant(t, svc, entities.SpeciesAmpalaya, jan(20))
	_, err := svc.MarkFlowering(uid, b, entities.GenderMale)
	require.NoError(t, err)

	// newest first by default
	vs, total, err := svc.List(uid, repository.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, vs, 3)
	assert.Equal(t, c, vs[0].PlantID)
	assert.Equal(t, a, vs[2].PlantID)

	// species filter
	vs, total, err = svc.List(uid, repository.ListQuery{Species: entities.SpeciesAmpalaya})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// status filter
	vs, total, err = svc.List(uid, repository.ListQuery{Status: entities.StatusFlowering})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, b, vs[0].PlantID)

	// pagination
	vs, total, err = svc.List(uid, repository.ListQuery{Sort: "oldest", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, vs, 1)
	assert.Equal(t, c, vs[0].PlantID)
}

func TestAttentionList(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)

	jan := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	undet := seedPlant(t, svc, entities.SpeciesAmpalaya, jan(1))
	younger := seedPlant(t, svc, entities.SpeciesUpo, jan(15))
	older := seedPlant(t, svc, entities.SpeciesPatola, jan(5))
	_, err := svc.MarkFlowering(uid, younger, entities.GenderMale)
	require.NoError(t, err)
	_, err = svc.MarkFlowering(uid, older, entities.GenderFemale)
	require.NoError(t, err)

	got, err := svc.Attention(uid)
	require.NoError(t, err)
	require.Len(t, got, 2, "undetermined plant %d stays hidden", undet)
	assert.Equal(t, older, got[0].PlantID, "sorted by planting date ascending")
	assert.Equal(t, younger, got[1].PlantID)

	up, err := svc.Upcoming(uid)
	require.NoError(t, err)
	assert.Len(t, up, 2)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)

	jan := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	seedPlant(t, svc, entities.SpeciesAmpalaya, jan(1))
	b := seedPlant(t, svc, entities.SpeciesUpo, jan(10))
	_, err := svc.MarkFlowering(uid, b, entities.GenderFemale)
	require.NoError(t, err)

	d, err := svc.Dashboard(uid)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.Total)
	assert.EqualValues(t, 2, d.Active)
	assert.Equal(t, 1, d.NeedsAttention)
	assert.EqualValues(t, 1, d.ByStatus[entities.StatusPlanted])
	assert.EqualValues(t, 1, d.ByStatus[entities.StatusFlowering])
	assert.EqualValues(t, 1, d.BySpecies[entities.SpeciesUpo])
	assert.Len(t, d.PlantTypes, 5)
	assert.Len(t, d.RecentActivity, 2)
}

func TestNotificationRoundTrip(t *testing.T) {
	planted := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	pollinate := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	// clock sits inside the one-hour lead window for ampalaya (05:15)
	now := time.Date(2024, time.February, 20, 5, 15, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesAmpalaya, planted)
	_, err := svc.MarkPollinated(uid, id, &pollinate)
	require.NoError(t, err)

	pending, err := svc.PendingNotifications(uid)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, notify.KindOneHourBefore, pending[0].Kind)
	assert.Equal(t, id, pending[0].PlantID)

	require.NoError(t, svc.MarkNotificationSent(uid, id, notify.KindOneHourBefore))
	pending, err = svc.PendingNotifications(uid)
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = svc.MarkNotificationSent(uid, id, "nextWeek")
	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPollinationEstimateSurfacesOnViews(t *testing.T) {
	planted := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC)
	svc, _ := newSvc(now)
	id := seedPlant(t, svc, entities.SpeciesAmpalaya, planted)

	v, err := svc.Get(uid, id)
	require.NoError(t, err)
	assert.Equal(t, timing.EstimateUndetermined, v.PollinationEstimate)

	_, err = svc.MarkFlowering(uid, id, entities.GenderFemale)
	require.NoError(t, err)
	v, err = svc.Get(uid, id)
	require.NoError(t, err)
	assert.Equal(t, timing.EstimateReadyNow, v.PollinationEstimate)
}
