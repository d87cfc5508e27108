package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ppiankov/greenspectre/internal/analyzer"
)

// barWidth is the number of bar units that represent 100% of total cost.
const barWidth = 30

// Style tells the text reporter how to emphasize a line.
type Style int

const (
	StylePlain Style = iota
	StyleHeading
	StyleWarning
	StyleSuggestion
	StyleGood
)

// Line is one rendered report line.
type Line struct {
	Text  string
	Style Style
}

// Section is a titled, self-contained block of the text report.
type Section struct {
	Title string
	Lines []Line
}

type sectionBuilder struct {
	lines []Line
}

func (b *sectionBuilder) add(style Style, format string, args ...any) {
	b.lines = append(b.lines, Line{Text: fmt.Sprintf(format, args...), Style: style})
}

func (b *sectionBuilder) plain(format string, args ...any)      { b.add(StylePlain, format, args...) }
func (b *sectionBuilder) heading(format string, args ...any)    { b.add(StyleHeading, format, args...) }
func (b *sectionBuilder) warning(format string, args ...any)    { b.add(StyleWarning, format, args...) }
func (b *sectionBuilder) suggestion(format string, args ...any) { b.add(StyleSuggestion, format, args...) }
func (b *sectionBuilder) good(format string, args ...any)       { b.add(StyleGood, format, args...) }
func (b *sectionBuilder) blank()                                { b.lines = append(b.lines, Line{}) }

// BuildSections lays out the report in its fixed order: header, utilization,
// cost, recommendations, checklist, footer. Each section reads only its own
// part of the result.
func BuildSections(data Data) []Section {
	res := data.Result
	if res == nil {
		res = &analyzer.Result{}
	}
	return []Section{
		headerSection(data, res),
		utilizationSection(res),
		costSection(res.Cost),
		recommendationSection(res.Recommendations),
		checklistSection(res.Checklist),
		footerSection(data.Tool),
	}
}

func headerSection(data Data, res *analyzer.Result) Section {
	var b sectionBuilder
	b.plain("%s %s | Well-Architected Framework, Sustainability pillar", data.Tool, data.Version)
	b.blank()
	b.plain("Account:   %s", valueOr(res.Identity.Account, "(unknown)"))
	b.plain("Caller:    %s", valueOr(res.Identity.ARN, "(unknown)"))
	b.plain("Region:    %s", valueOr(res.Identity.Region, "(unknown)"))
	b.plain("Generated: %s", data.Timestamp.UTC().Format(time.RFC3339))
	return Section{Title: "AWS Sustainability Check", Lines: b.lines}
}

func utilizationSection(res *analyzer.Result) Section {
	var b sectionBuilder
	u := res.Utilization

	switch {
	case u.Err != nil:
		b.warning("⚠ Failed to list EC2 instances: %s", u.Err.Message)
		permissionHint(&b, u.Err)
	case u.Empty():
		b.plain("No running EC2 instances found.")
		b.good("→ If your workloads run serverless, that is already a sustainable choice.")
	default:
		b.plain("Running instances: %d", len(u.Instances))
		b.blank()
		for _, inst := range u.Instances {
			instanceLines(&b, inst)
			b.blank()
		}
		b.heading("--- Summary ---")
		b.plain("  ARM (Graviton) instances: %d", u.ARMCount)
		b.plain("  x86 instances: %d", u.X86Count)
		if u.HasRatio() {
			b.plain("  ARM ratio: %.1f%%", u.ARMPercent)
		}
		if u.SuggestARM {
			b.suggestion("  → Suggestion: moving x86 instances to Graviton saves energy for the same work.")
		}
		if u.LowUtilization > 0 {
			b.blank()
			b.warning("  Low-utilization instances: %d", u.LowUtilization)
			b.suggestion("  → Check Compute Optimizer and rightsize these instances.")
		}
	}

	if res.Databases != nil {
		b.blank()
		databaseLines(&b, *res.Databases)
	}

	return Section{Title: fmt.Sprintf("1. EC2 Utilization (last %d days)", analyzer.LookbackDays), Lines: b.lines}
}

func instanceLines(b *sectionBuilder, inst analyzer.InstanceRecord) {
	b.plain("  %s (%s) [%s]", inst.ID, inst.Type, inst.Architecture.Label())
	b.plain("    Name: %s", valueOr(inst.Name, "(none)"))

	util := inst.Utilization
	if util == nil || !util.Available {
		b.plain("    %d-day average CPU: no data", analyzer.LookbackDays)
	} else {
		b.plain("    %d-day average CPU: %.1f%%", analyzer.LookbackDays, util.Average)
	}

	if util != nil && util.Err != nil {
		if util.Err.Kind == analyzer.ErrorPermissionDenied {
			b.warning("    ⚠ Insufficient CloudWatch permission: %s is required.", util.Err.Permission)
		} else {
			b.warning("    ⚠ CloudWatch metric query failed: %s", errorLabel(util.Err))
		}
	}
	if inst.LowUtilization() {
		b.warning("    ⚠ CPU utilization is very low. Consider rightsizing.")
	}
}

func databaseLines(b *sectionBuilder, dbs analyzer.DatabaseResult) {
	b.heading("--- RDS instances ---")
	switch {
	case dbs.Err != nil:
		b.warning("  ⚠ Failed to list RDS instances: %s", dbs.Err.Message)
		permissionHint(b, dbs.Err)
	case dbs.Empty():
		b.plain("  No available RDS instances found.")
	default:
		for _, db := range dbs.Databases {
			b.plain("  %s (%s, %s) [%s]", db.ID, db.Class, db.Engine, db.Architecture.Label())
		}
		b.plain("  ARM (Graviton) databases: %d, x86 databases: %d", dbs.ARMCount, dbs.X86Count)
		if dbs.X86Count > 0 {
			b.suggestion("  → Graviton DB classes (db.m7g, db.r7g, db.t4g) run the same engines on less energy.")
		}
	}
}

func costSection(c analyzer.CostResult) Section {
	var b sectionBuilder

	switch {
	case c.Skipped:
		b.plain("Cost analysis skipped (--skip-cost).")
	case c.Err != nil:
		b.warning("⚠ Failed to retrieve cost data: %s", c.Err.Message)
		b.plain("  Note: Cost Explorer must be enabled for this account.")
		permissionHint(&b, c.Err)
	case c.Empty():
		b.plain("No cost incurred in the last %d days.", analyzer.CostWindowDays)
	default:
		b.plain("Total cost: $%s", humanize.FormatFloat("#,###.##", c.Total))
		b.blank()
		for _, e := range c.Top() {
			bar := strings.Repeat("█", barLength(e.Cost, c.Total))
			b.plain("  $%8.2f (%5.1f%%) %s %s", e.Cost, e.Percent, bar, e.Service)
		}
		b.blank()
		b.heading("--- Sustainability suggestions ---")
		if len(c.Suggestions) == 0 {
			b.plain("  No service-specific suggestions for the top services.")
		}
		for _, s := range c.Suggestions {
			b.suggestion("  → %s: %s", s.Label, s.Text)
		}
	}

	return Section{Title: fmt.Sprintf("2. Cost by Service (last %d days)", analyzer.CostWindowDays), Lines: b.lines}
}

func recommendationSection(r analyzer.RecommendationResult) Section {
	var b sectionBuilder

	switch {
	case r.NotEnabled:
		b.warning("%s", analyzer.NotEnabledNotice)
		b.plain("%s", analyzer.OptInInstructions)
	case r.Err != nil:
		b.warning("⚠ Failed to query Compute Optimizer: %s", r.Err.Message)
		permissionHint(&b, r.Err)
	default:
		for _, s := range r.Summaries {
			b.heading("  Resource type: %s", s.ResourceType)
			if len(s.Findings) == 0 {
				b.plain("    No findings")
			}
			for _, f := range s.Findings {
				style := StylePlain
				if f.Category == analyzer.CategoryOverProvisioned {
					style = StyleWarning
				}
				b.add(style, "    %s: %d", f.Label, f.Count)
			}
		}
	}

	return Section{Title: "3. Compute Optimizer Recommendations", Lines: b.lines}
}

func checklistSection(categories []analyzer.ChecklistCategory) Section {
	var b sectionBuilder
	for i, c := range categories {
		if i > 0 {
			b.blank()
		}
		b.heading("  [%s]", c.Category)
		for _, item := range c.Items {
			b.plain("    %s", item)
		}
	}
	b.blank()
	b.heading("--- Customer Carbon Footprint Tool ---")
	b.plain("  AWS Console > Billing and Cost Management > Carbon Footprint")
	b.plain("  or: %s", analyzer.CarbonFootprintConsole)
	return Section{Title: "4. Sustainability Checklist", Lines: b.lines}
}

func footerSection(tool string) Section {
	var b sectionBuilder
	b.plain("You can't improve what you don't measure.")
	b.plain("Run %s regularly to track your sustainability posture.", tool)
	return Section{Title: "Check complete", Lines: b.lines}
}

func permissionHint(b *sectionBuilder, err *analyzer.SectionError) {
	if err.Kind == analyzer.ErrorPermissionDenied && err.Permission != "" {
		b.plain("  Required permission: %s", err.Permission)
	}
}

func errorLabel(err *analyzer.SectionError) string {
	if err.Code != "" {
		return err.Code
	}
	return err.Message
}

// barLength returns the number of bar units for cost, floor(cost/total*barWidth).
func barLength(cost, total float64) int {
	if total <= 0 || cost <= 0 {
		return 0
	}
	return int(math.Floor(cost / total * barWidth))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
