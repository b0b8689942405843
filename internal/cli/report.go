package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"license-audit/internal/app"
	"license-audit/internal/shared"
	"license-audit/internal/types"
)

var (
	headingStyle     = lipgloss.NewStyle().Bold(true)
	approvedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unapprovedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	unprocessedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printInvalid lists each unapproved module as "key: license".
func printInvalid(w io.Writer, invalid *types.FlatModuleMap) {
	if invalid.Len() == 0 {
		fmt.Fprintln(w, approvedStyle.Render("all modules approved"))
		return
	}
	fmt.Fprintln(w, unapprovedStyle.Render(fmt.Sprintf("unapproved modules (%d):", invalid.Len())))
	invalid.Range(func(key types.ModuleKey, record types.ModuleRecord) bool {
		fmt.Fprintf(w, "%s: %s\n", key, shared.DisplayLicense(record.Licenses))
		return true
	})
}

func printSummary(w io.Writer, summary types.Summary) {
	sections := []struct {
		title  string
		status types.ComplianceStatus
		style  lipgloss.Style
	}{
		{title: "Approved", status: types.ComplianceApproved, style: approvedStyle},
		{title: "Unapproved", status: types.ComplianceUnapproved, style: unapprovedStyle},
		{title: "Unprocessed", status: types.ComplianceUnprocessed, style: unprocessedStyle},
	}
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := fmt.Sprintf("%s (%d)", section.title, summary.ModuleCount(section.status))
		fmt.Fprintln(w, headingStyle.Inherit(section.style).Render(heading))
		groups := summary.Groups(section.status)
		if len(groups) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("  none"))
			continue
		}
		for _, group := range groups {
			fmt.Fprintf(w, "  %s: %d\n", section.style.Render(shared.DisplayLicense(group.License)), group.Count())
			for _, key := range group.Modules {
				fmt.Fprintf(w, "    %s\n", mutedStyle.Render(string(key)))
			}
		}
	}
}

func printReconcile(w io.Writer, result app.ReconcileResult) {
	if len(result.AddedLicenses) > 0 {
		fmt.Fprintf(w, "licenses added: %s\n", approvedStyle.Render(strings.Join(result.AddedLicenses, ", ")))
	}
	if len(result.AddedModules) > 0 {
		keys := make([]string, 0, len(result.AddedModules))
		for _, key := range result.AddedModules {
			keys = append(keys, string(key))
		}
		fmt.Fprintf(w, "modules added: %s\n", approvedStyle.Render(strings.Join(keys, ", ")))
	}
	if result.Quit {
		fmt.Fprintln(w, mutedStyle.Render("review stopped early"))
	}
	fmt.Fprintf(w, "allowlist written: %s\n", result.AllowlistPath)
	if result.Remaining.Len() > 0 {
		fmt.Fprintln(w, unapprovedStyle.Render(fmt.Sprintf("%d modules remain unapproved", result.Remaining.Len())))
	}
}
