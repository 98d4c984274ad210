package intel

import (
	"fmt"
	"strings"
)

const (
	bannerLine    = "=================================================="
	separatorLine = "--------------------------------------------------"
)

// FormatReport renders a RunResult as a human-readable console report. Error
// results produce a single ERROR line inside the banner instead of the data
// sections.
func FormatReport(result *RunResult) string {
	var b strings.Builder

	b.WriteString("\n" + bannerLine + "\n")
	b.WriteString("COMPANY INTELLIGENCE REPORT\n")
	b.WriteString(bannerLine + "\n\n")

	if result.Error != "" {
		fmt.Fprintf(&b, "ERROR: %s\n", result.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "Company: %s\n\n", result.Company)
	b.WriteString(separatorLine + "\n")
	b.WriteString("RAW DATA\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString(result.RawData + "\n")
	b.WriteString("\n" + separatorLine + "\n")
	b.WriteString("ANALYSIS\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString(result.Analysis + "\n")
	b.WriteString("\n" + bannerLine + "\n")

	return b.String()
}
