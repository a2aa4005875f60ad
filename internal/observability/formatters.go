// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPaths outputs a human-readable summary of the discovered paths.
func (p *Printer) PrintPaths(resp *types.CareerPathResponse) {
	if resp == nil || len(resp.Paths) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Paths found: %d\n\n", len(resp.Paths)))

	count := min(len(resp.Paths), maxItemsToShow)
	for i := 0; i < count; i++ {
		path := resp.Paths[i]
		route := strings.Join(path.Roles, " → ")
		if len(route) > boxWidth-8 {
			route = route[:boxWidth-11] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, route))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Months: %d  Match: %.0f%%\n",
			path.Score, path.TotalMonths, path.SkillMatch))
		if path.IsCrossIndustry {
			sb.WriteString("    Cross-industry plan\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(resp.Paths) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more paths", len(resp.Paths)-maxItemsToShow))
	}

	p.printBox("CAREER PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs the per-path gap analysis.
func (p *Printer) PrintSkillGaps(gaps []types.PathSkillGap) {
	if len(gaps) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(gaps), maxItemsToShow)
	for i := 0; i < count; i++ {
		gap := gaps[i]
		target := ""
		if len(gap.Roles) > 0 {
			target = gap.Roles[len(gap.Roles)-1]
		}
		sb.WriteString(fmt.Sprintf("%s: %.0f%% match\n", target, gap.MatchPercentage))
		if len(gap.MissingSkills) > 0 {
			missing := strings.Join(gap.MissingSkills, ", ")
			if len(missing) > 40 {
				missing = missing[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", missing))
		}
	}
	if len(gaps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more paths\n", len(gaps)-maxItemsToShow))
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs the recommended path, including infeasible
// cross-industry outcomes that carry only a note and alternatives.
func (p *Printer) PrintRecommendation(path *types.ScoredPath) {
	if path == nil {
		return
	}

	var sb strings.Builder
	if path.IsFeasible != nil && !*path.IsFeasible {
		sb.WriteString("Transition judged infeasible.\n")
		if path.FeasibilityNote != "" {
			sb.WriteString(fmt.Sprintf("Note: %s\n", path.FeasibilityNote))
		}
		if len(path.AlternativePaths) > 0 {
			sb.WriteString(fmt.Sprintf("Alternatives: %s\n", strings.Join(path.AlternativePaths, ", ")))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Route:  %s\n", strings.Join(path.Roles, " → ")))
		sb.WriteString(fmt.Sprintf("Score:  %.2f\n", path.Score))
		sb.WriteString(fmt.Sprintf("Months: %d\n", path.TotalMonths))
		if path.SalaryGrowth != 0 {
			sb.WriteString(fmt.Sprintf("Salary: %+d\n", path.SalaryGrowth))
		}
	}

	p.printBox("RECOMMENDED PATH", strings.TrimSuffix(sb.String(), "\n"))
}
