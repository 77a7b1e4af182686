package app

import (
	"context"
	"math"
	"testing"

	"statclinic/adapters/stattest"
	"statclinic/domain/core"
	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/internal/testkit"
)

func newPipelineFixture(workers int) (*PipelineService, *testkit.InMemoryCatalogAdapter, *testkit.InMemoryStoreAdapter) {
	catalog := testkit.NewInMemoryCatalogAdapter()
	store := testkit.NewInMemoryStoreAdapter()
	assessor := NewAssessmentService(stattest.NewSuite(), nil)
	return NewPipelineService(assessor, catalog, store, workers), catalog, store
}

func TestAssessFramePersistsEveryColumn(t *testing.T) {
	pipeline, catalog, store := newPipelineFixture(2)

	noise := testkit.WhiteNoise(42, 100)
	noise.Name = "noise"
	noise.Key = core.SeriesKey("noise")
	flat := testkit.ConstantSeries(3.0, 100)
	flat.Name = "flat"
	flat.Key = core.SeriesKey("flat")

	catalog.AddFrame("energy.csv", series.Frame{
		Name:    "energy.csv",
		Columns: []series.Series{noise, flat},
	})

	report, err := pipeline.AssessFrame(context.Background(), "energy.csv", nil, stationarity.DefaultParams())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(report.Records))
	}
	if report.Records[0].SeriesName != "noise" || report.Records[1].SeriesName != "flat" {
		t.Errorf("Expected records in column order, got %s then %s",
			report.Records[0].SeriesName, report.Records[1].SeriesName)
	}

	if report.Records[0].Status != run.StatusCompleted {
		t.Errorf("Expected the noise column to complete, got %s: %s",
			report.Records[0].Status, report.Records[0].Error)
	}
	if !report.Records[0].Stationary() {
		t.Error("Expected white noise to be assessed stationary")
	}

	if report.Records[1].Status != run.StatusFailed {
		t.Errorf("Expected the constant column to fail, got %s", report.Records[1].Status)
	}
	if report.Records[1].Error == "" {
		t.Error("Expected the failed record to carry an error message")
	}

	if report.Completed() != 1 || report.Failed() != 1 {
		t.Errorf("Expected 1 completed and 1 failed, got %d and %d", report.Completed(), report.Failed())
	}

	saved, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("Expected both records persisted, got %d", len(saved))
	}
}

func TestAssessFrameColumnSubset(t *testing.T) {
	pipeline, catalog, _ := newPipelineFixture(1)

	noise := testkit.WhiteNoise(42, 100)
	noise.Name = "noise"
	noise.Key = core.SeriesKey("noise")
	walk := testkit.RandomWalk(42, 100)

	catalog.AddFrame("mix.csv", series.Frame{
		Name:    "mix.csv",
		Columns: []series.Series{noise, walk},
	})

	report, err := pipeline.AssessFrame(context.Background(), "mix.csv", []string{"noise"}, stationarity.DefaultParams())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(report.Records) != 1 || report.Records[0].SeriesName != "noise" {
		t.Errorf("Expected only the requested column, got %+v", report.Records)
	}

	_, err = pipeline.AssessFrame(context.Background(), "mix.csv", []string{"missing"}, stationarity.DefaultParams())
	if !core.IsNotFoundError(err) {
		t.Errorf("Expected a not-found error for an unknown column, got %v", err)
	}
}

func TestAssessSeriesRoundTrip(t *testing.T) {
	pipeline, catalog, _ := newPipelineFixture(1)

	noise := testkit.WhiteNoise(42, 120)
	noise.Name = "demand"
	noise.Key = core.SeriesKey("demand")
	catalog.AddFrame("demand.csv", series.Frame{
		Name:    "demand.csv",
		Columns: []series.Series{noise},
	})

	rec, err := pipeline.AssessSeries(context.Background(), "demand.csv", "demand", stationarity.DefaultParams())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.Status != run.StatusCompleted {
		t.Fatalf("Expected a completed run, got %s: %s", rec.Status, rec.Error)
	}

	loaded, err := pipeline.GetRun(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded.ID != rec.ID || loaded.SeriesName != "demand" {
		t.Errorf("Expected the persisted run back, got %+v", loaded)
	}

	bySeries, err := pipeline.ListRunsBySeries(context.Background(), core.SeriesKey("demand"), 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(bySeries) != 1 {
		t.Errorf("Expected 1 run for the series, got %d", len(bySeries))
	}

	_, err = pipeline.AssessSeries(context.Background(), "nowhere.csv", "demand", stationarity.DefaultParams())
	if !core.IsNotFoundError(err) {
		t.Errorf("Expected a not-found error for an unknown source, got %v", err)
	}
}

func TestAssessSeriesCleansBeforeCounting(t *testing.T) {
	pipeline, catalog, _ := newPipelineFixture(1)

	noise := testkit.WhiteNoise(42, 100)
	values := append([]float64{math.NaN()}, noise.Values...)
	values = append(values, math.NaN(), math.Inf(1))
	dirty := series.New("dirty", values)
	catalog.AddFrame("dirty.csv", series.Frame{
		Name:    "dirty.csv",
		Columns: []series.Series{dirty},
	})

	rec, err := pipeline.AssessSeries(context.Background(), "dirty.csv", "dirty", stationarity.DefaultParams())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.Observations != 100 {
		t.Errorf("Expected 100 observations after cleaning, got %d", rec.Observations)
	}
	if rec.Status != run.StatusCompleted {
		t.Errorf("Expected a completed run, got %s: %s", rec.Status, rec.Error)
	}
}

func TestAssessSeriesDetailedMode(t *testing.T) {
	catalog := testkit.NewInMemoryCatalogAdapter()
	store := testkit.NewInMemoryStoreAdapter()
	assessor := NewAssessmentService(stubSuite(0.01, 0.50, 0.01), nil)
	pipeline := NewPipelineService(assessor, catalog, store, 1)

	noise := testkit.WhiteNoise(7, 50)
	noise.Name = "load"
	noise.Key = core.SeriesKey("load")
	catalog.AddFrame("load.csv", series.Frame{
		Name:    "load.csv",
		Columns: []series.Series{noise},
	})

	params := stationarity.DefaultParams()
	params.Detailed = true

	rec, err := pipeline.AssessSeries(context.Background(), "load.csv", "load", params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.Detailed == nil {
		t.Fatal("Expected a detailed assessment on the record")
	}
	if rec.Assessment != nil {
		t.Error("Expected no simple assessment in detailed mode")
	}
	if len(rec.Recommendations) == 0 {
		t.Error("Expected recommendations from the summary")
	}
	if rec.Detailed.Summary.TotalConfigurations != 2 {
		t.Errorf("Expected 2 configurations, got %d", rec.Detailed.Summary.TotalConfigurations)
	}
}
