package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/costlens/backend/internal/domain"
)

// Styles for terminal output.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// PrintReport renders a lookup report grouped by category in catalog order.
// Unmatched labels are listed only when showUnmatched is set.
func PrintReport(w io.Writer, report *domain.Report, showUnmatched bool) {
	fmt.Fprintf(w, "\n%s  %s\n",
		headerStyle.Render(fmt.Sprintf("Cost of living in %s, %s", report.City, report.Country)),
		cyanStyle.Render(fmt.Sprintf("%d of %d rows matched", report.Stats.Matched, report.Stats.Rows)),
	)

	source := report.SourceURL
	if report.FromCache {
		source += " (cached)"
	}
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render(source))

	itemStyle := lipgloss.NewStyle().Width(labelColumnWidth(report, showUnmatched))

	for _, category := range report.Categories {
		fmt.Fprintf(w, "  %s\n", titleStyle.Render(category.Name))
		if len(category.Items) == 0 {
			fmt.Fprintf(w, "    %s\n\n", dimStyle.Render("no prices found"))
			continue
		}
		for _, item := range category.Items {
			fmt.Fprintf(w, "    %s %s\n", itemStyle.Render(item.Item), priceStyle.Render(item.Price))
		}
		fmt.Fprintln(w)
	}

	if showUnmatched && len(report.Unmatched) > 0 {
		fmt.Fprintf(w, "  %s\n", warningStyle.Render(fmt.Sprintf("Unmatched labels (%d)", len(report.Unmatched))))
		for _, row := range report.Unmatched {
			fmt.Fprintf(w, "    %s %s\n", itemStyle.Render(row.Label), dimStyle.Render(row.Price))
		}
		fmt.Fprintln(w)
	}

	if report.Stats.Dropped > 0 {
		fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("%d rows without a price were skipped", report.Stats.Dropped)))
	}
}

// labelColumnWidth returns the width of the widest label that will be printed
func labelColumnWidth(report *domain.Report, showUnmatched bool) int {
	width := 0
	for _, category := range report.Categories {
		for _, item := range category.Items {
			width = max(width, lipgloss.Width(item.Item))
		}
	}
	if showUnmatched {
		for _, row := range report.Unmatched {
			width = max(width, lipgloss.Width(row.Label))
		}
	}
	return width
}

// PrintReportJSON renders a report as JSON.
func PrintReportJSON(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// PrintCatalog renders the catalog categories and their items.
func PrintCatalog(w io.Writer, catalog *domain.Catalog) {
	fmt.Fprintln(w)
	for _, category := range catalog.Categories {
		fmt.Fprintf(w, "  %s %s\n",
			titleStyle.Render(category.Name),
			dimStyle.Render(fmt.Sprintf("(%d items)", len(category.Items))),
		)
		for _, item := range category.Items {
			fmt.Fprintf(w, "    %s\n", item)
		}
		fmt.Fprintln(w)
	}
}

// PrintCatalogJSON renders the catalog as JSON.
func PrintCatalogJSON(w io.Writer, catalog *domain.Catalog) error {
	return json.NewEncoder(w).Encode(catalog)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}
