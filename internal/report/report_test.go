package report

import (
	"errors"
	"strings"
	"testing"

	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/internal/profiling"
)

func completedRecord() *run.Record {
	s := series.New("demand", []float64{1, 2, 3, 4, 5})
	rec := run.NewRecord(s, stationarity.DefaultParams())

	results := []stationarity.TestResult{
		stationarity.NewTestResult(stationarity.UnitRootADF, stationarity.RegConstant, 0.05,
			stationarity.TestStats{Statistic: -3.5, PValue: 0.008, UsedLags: 2, CriticalValues: map[string]float64{"1%": -3.43, "5%": -2.86, "10%": -2.57}}),
		stationarity.NewTestResult(stationarity.StationarityKPSS, stationarity.RegConstant, 0.05,
			stationarity.TestStats{Statistic: 0.21, PValue: 0.10, UsedLags: 12, CriticalValues: map[string]float64{"10%": 0.347, "5%": 0.463, "2.5%": 0.574, "1%": 0.739}}),
		stationarity.NewTestResult(stationarity.UnitRootPP, stationarity.RegConstant, 0.05,
			stationarity.TestStats{Statistic: -4.1, PValue: 0.001, UsedLags: 4, CriticalValues: map[string]float64{}}),
	}
	assessment := stationarity.NewAssessment(0.05, stationarity.RegConstant, results)
	rec.CompleteSimple(assessment, stationarity.Recommendations(assessment))
	return rec
}

func TestMarkdownSimpleReport(t *testing.T) {
	md := Markdown(completedRecord(), nil)

	for _, want := range []string{
		"# Stationarity Assessment: demand",
		"| ADF | -3.5000 | 0.0080 | 2 |",
		"| KPSS | 0.2100 | 0.1000 | 12 |",
		"| Phillips-Perron | -4.1000 | 0.0010 | 4 | - |",
		"Overall: yes",
		"Time series appears to be stationary.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected report to contain %q\n%s", want, md)
		}
	}
}

func TestMarkdownCriticalValueOrder(t *testing.T) {
	md := Markdown(completedRecord(), nil)

	if !strings.Contains(md, "1%: -3.430, 5%: -2.862, 10%: -2.567") {
		t.Errorf("Expected critical values ordered tightest first:\n%s", md)
	}
	if !strings.Contains(md, "1%: 0.739, 2.5%: 0.574, 5%: 0.463, 10%: 0.347") {
		t.Errorf("Expected the KPSS table to include the 2.5%% level:\n%s", md)
	}
}

func TestMarkdownFailedRun(t *testing.T) {
	s := series.New("flat", []float64{7, 7, 7})
	rec := run.NewRecord(s, stationarity.DefaultParams())
	rec.Fail(errors.New("adf: auxiliary regression failed"))

	md := Markdown(rec, nil)
	if !strings.Contains(md, "## Failure") || !strings.Contains(md, "adf: auxiliary regression failed") {
		t.Errorf("Expected the failure section:\n%s", md)
	}
}

func TestMarkdownWithProfile(t *testing.T) {
	profile := &profiling.SeriesProfile{Count: 5, Mean: 3, StdDev: 1.5, Min: 1, Median: 3, Max: 5}
	md := Markdown(completedRecord(), profile)

	if !strings.Contains(md, "## Series Profile") {
		t.Errorf("Expected a profile section:\n%s", md)
	}
	if !strings.Contains(md, "| 5 | 0 | 3.0000 | 1.5000 |") {
		t.Errorf("Expected the profile row:\n%s", md)
	}
}

func TestFrameMarkdown(t *testing.T) {
	ok := completedRecord()
	failed := run.NewRecord(series.New("flat", []float64{7, 7, 7}), stationarity.DefaultParams())
	failed.Error = "adf: degenerate standard error"
	failed.Status = run.StatusFailed

	md := FrameMarkdown("energy.csv", []*run.Record{ok, failed})

	if !strings.Contains(md, "# Stationarity Report: energy.csv") {
		t.Errorf("Expected the report title:\n%s", md)
	}
	if !strings.Contains(md, "| demand | completed | 5 | yes |") {
		t.Errorf("Expected the completed row:\n%s", md)
	}
	if !strings.Contains(md, "| flat | failed | 3 | - | adf: degenerate standard error |") {
		t.Errorf("Expected the failed row:\n%s", md)
	}
}

func TestHTMLRendersTables(t *testing.T) {
	out := string(HTML(Markdown(completedRecord(), nil)))

	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<table>") {
		t.Errorf("Expected rendered HTML with a heading and a table:\n%s", out)
	}
	if !strings.Contains(out, "Phillips-Perron") {
		t.Errorf("Expected test rows in the HTML:\n%s", out)
	}
}
