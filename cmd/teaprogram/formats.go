package teaprogram

import (
	"fmt"
	"strings"
	"time"

	"github.com/flytaly/mdsite/pkg/fswatcher"
	"github.com/flytaly/mdsite/pkg/site"
	"github.com/gookit/color"
)

// Summary describes the result of a build in one or more lines
func Summary(report *site.Report, err error, maxWidth int) string {
	if err != nil {
		return fmt.Sprintf(" %s %s", color.Red.Sprint("✗ build failed:"), err)
	}
	if report == nil {
		return ""
	}
	failed := report.Failed()
	ok := len(report.Pages) - len(failed)
	output := fmt.Sprintf(" %s %d pages, %d static files in %s",
		color.Green.Sprint("✓"), ok, report.Assets, report.Duration.Round(time.Millisecond))
	if len(failed) > 0 {
		output += color.Red.Sprintf(", %d failed", len(failed))
	}
	maxWidth = max(maxWidth-7, 20)
	for _, p := range failed {
		output += fmt.Sprintf("\n - %s: %s", color.Cyan.Sprint(tail(p.Source, maxWidth/2)), p.Err)
	}
	return output
}

func printChanges(changes []fswatcher.Event, limit int, maxWidth int) string {
	var sb strings.Builder
	maxWidth = max(maxWidth-12, 20)
	for i, e := range changes {
		if i >= limit {
			fmt.Fprintf(&sb, " and %d more changes...\n", len(changes)-limit)
			break
		}
		fmt.Fprintf(&sb, " %-6s %s\n", e.Op, color.Cyan.Sprint(tail(e.Name, maxWidth)))
	}
	return sb.String()
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}
