package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statclinic/domain/run"
	"statclinic/domain/stationarity"
	"statclinic/internal/profiling"
)

// Markdown renders one run record as a markdown report. The profile
// section is included when profile is non-nil.
func Markdown(rec *run.Record, profile *profiling.SeriesProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Stationarity Assessment: %s\n\n", rec.SeriesName)
	fmt.Fprintf(&b, "- Run: `%s`\n", rec.ID)
	fmt.Fprintf(&b, "- Status: %s\n", rec.Status)
	fmt.Fprintf(&b, "- Observations: %d\n", rec.Observations)
	fmt.Fprintf(&b, "- Alpha: %g\n", rec.Params.Alpha)
	fmt.Fprintf(&b, "- Regression: %s\n", rec.Params.Regression.Describe())
	fmt.Fprintf(&b, "- Started: %s\n", rec.StartedAt)
	if rec.CompletedAt != nil {
		fmt.Fprintf(&b, "- Completed: %s\n", *rec.CompletedAt)
	}
	b.WriteString("\n")

	if rec.Status == run.StatusFailed {
		fmt.Fprintf(&b, "## Failure\n\n> %s\n\n", rec.Error)
	}

	if profile != nil {
		writeProfile(&b, profile)
	}

	switch {
	case rec.Detailed != nil:
		writeDetailed(&b, rec.Detailed)
	case rec.Assessment != nil:
		writeAssessment(&b, "Test Results", *rec.Assessment)
	}

	if len(rec.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range rec.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FrameMarkdown renders the outcome of a frame assessment: one summary
// table over all columns.
func FrameMarkdown(source string, records []*run.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Stationarity Report: %s\n\n", source)
	b.WriteString("| Series | Status | Observations | Stationary | Guidance |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, rec := range records {
		verdict := "-"
		guidance := "-"
		if rec.Status == run.StatusCompleted {
			verdict = yesNo(rec.Stationary())
			if len(rec.Recommendations) > 0 {
				guidance = rec.Recommendations[0]
			}
		} else {
			guidance = rec.Error
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
			rec.SeriesName, rec.Status, rec.Observations, verdict, guidance)
	}
	b.WriteString("\n")

	return b.String()
}

// HTML converts a markdown report into an HTML fragment.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeProfile(b *strings.Builder, p *profiling.SeriesProfile) {
	b.WriteString("## Series Profile\n\n")
	b.WriteString("| Count | Missing | Mean | Std Dev | Min | Median | Max | Outliers |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	fmt.Fprintf(b, "| %d | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %d |\n\n",
		p.Count, p.Missing, p.Mean, p.StdDev, p.Min, p.Median, p.Max, p.Outliers)
}

func writeDetailed(b *strings.Builder, d *stationarity.DetailedAssessment) {
	for _, cfg := range stationarity.DetailedConfigs() {
		a, ok := d.Configurations[cfg.Label]
		if !ok {
			continue
		}
		writeAssessment(b, fmt.Sprintf("Configuration: %s", cfg.Label), a)
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- Stationary: %s\n", yesNo(d.Summary.IsStationary))
	fmt.Fprintf(b, "- Stationary configurations: %d of %d\n\n",
		d.Summary.StationaryCount, d.Summary.TotalConfigurations)
}

func writeAssessment(b *strings.Builder, title string, a stationarity.Assessment) {
	fmt.Fprintf(b, "## %s\n\n", title)
	b.WriteString("| Test | Statistic | p-value | Lags | Critical Values | Stationary |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range a.Tests() {
		fmt.Fprintf(b, "| %s | %.4f | %.4f | %d | %s | %s |\n",
			r.Test.DisplayName(), r.TestStatistic, r.PValue, r.UsedLags,
			formatCriticalValues(r.CriticalValues), yesNo(r.Stationary))
	}
	fmt.Fprintf(b, "\nOverall: %s\n\n", yesNo(a.OverallStationary))
}

// formatCriticalValues renders the table deterministically, tightest
// significance level first.
func formatCriticalValues(cv map[string]float64) string {
	if len(cv) == 0 {
		return "-"
	}

	labels := make([]string, 0, len(cv))
	for label := range cv {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return percentValue(labels[i]) < percentValue(labels[j])
	})

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%s: %.3f", label, cv[label]))
	}
	return strings.Join(parts, ", ")
}

func percentValue(label string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(label, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
