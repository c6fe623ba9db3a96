package site

import (
	"fmt"
	"strings"
	"time"
)

// ReportFileName is written at the root of every build directory.
const ReportFileName = "build_report.txt"

// BuildReport is the human-readable summary of a build.
type BuildReport struct {
	BuildTime  time.Duration
	Posts      int
	Categories int
	Tags       int
	Skipped    int
	Generated  time.Time
}

func (r *BuildReport) String() string {
	var b strings.Builder
	b.WriteString("Build Report:\n")
	b.WriteString("-------------\n")
	fmt.Fprintf(&b, "Build Time: %.2f seconds\n", r.BuildTime.Seconds())
	fmt.Fprintf(&b, "Total Posts: %d\n", r.Posts)
	fmt.Fprintf(&b, "Total Categories: %d\n", r.Categories)
	fmt.Fprintf(&b, "Total Tags: %d\n", r.Tags)
	fmt.Fprintf(&b, "Skipped Documents: %d\n", r.Skipped)
	fmt.Fprintf(&b, "Date Generated: %s\n", r.Generated.Format("2006-01-02 15:04:05"))
	return b.String()
}
