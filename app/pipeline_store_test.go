package app

import (
	"context"
	"errors"
	"testing"

	"statclinic/adapters/stattest"
	"statclinic/domain/core"
	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing
type MockRunStore struct {
	mock.Mock
	saved []*run.Record
}

func (m *MockRunStore) SaveRun(ctx context.Context, rec *run.Record) error {
	args := m.Called(ctx, rec)
	m.saved = append(m.saved, rec)
	return args.Error(0)
}

func (m *MockRunStore) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*run.Record), args.Error(1)
}

func (m *MockRunStore) ListRuns(ctx context.Context, limit int) ([]*run.Record, error) {
	args := m.Called(ctx, limit)
	return m.saved, args.Error(1)
}

func (m *MockRunStore) ListRunsBySeries(ctx context.Context, key core.SeriesKey, limit int) ([]*run.Record, error) {
	args := m.Called(ctx, key, limit)
	return m.saved, args.Error(1)
}

func twoColumnCatalog() *testkit.InMemoryCatalogAdapter {
	catalog := testkit.NewInMemoryCatalogAdapter()

	noise := testkit.WhiteNoise(42, 100)
	noise.Name = "noise"
	noise.Key = core.SeriesKey("noise")
	walk := testkit.RandomWalk(42, 100)
	walk.Name = "walk"
	walk.Key = core.SeriesKey("walk")

	catalog.AddFrame("pair.csv", series.Frame{
		Name:    "pair.csv",
		Columns: []series.Series{noise, walk},
	})
	return catalog
}

func TestAssessFrameSavesEveryColumnOnce(t *testing.T) {
	mockStore := &MockRunStore{}
	mockStore.On("SaveRun", mock.Anything, mock.Anything).Return(nil)

	assessor := NewAssessmentService(stattest.NewSuite(), nil)
	pipeline := NewPipelineService(assessor, twoColumnCatalog(), mockStore, 2)

	report, err := pipeline.AssessFrame(context.Background(), "pair.csv", nil, stationarity.DefaultParams())

	assert.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, 2, len(report.Records), "Should persist one record per column")
	mockStore.AssertNumberOfCalls(t, "SaveRun", 2)

	assert.Equal(t, "noise", mockStore.saved[0].SeriesName, "Records should be saved in column order")
	assert.Equal(t, "walk", mockStore.saved[1].SeriesName, "Records should be saved in column order")
	assert.NotEqual(t, mockStore.saved[0].ID, mockStore.saved[1].ID, "Each column should get its own run ID")
}

func TestAssessSeriesSurfacesStoreFailures(t *testing.T) {
	mockStore := &MockRunStore{}
	mockStore.On("SaveRun", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	assessor := NewAssessmentService(stattest.NewSuite(), nil)
	pipeline := NewPipelineService(assessor, twoColumnCatalog(), mockStore, 1)

	rec, err := pipeline.AssessSeries(context.Background(), "pair.csv", "noise", stationarity.DefaultParams())

	assert.Error(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, err.Error(), "connection reset", "Store errors should surface to the caller")
	mockStore.AssertExpectations(t)
}
