package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportMarkdown renders audit records as a markdown table, newest first.
func ExportMarkdown(records []CallRecord) string {
	var b strings.Builder

	b.WriteString("# Tool call audit log\n\n")
	b.WriteString(fmt.Sprintf("%d calls\n\n", len(records)))
	b.WriteString("| Time | Tool | Category | OK | Duration | Error |\n")
	b.WriteString("|------|------|----------|----|----------|-------|\n")

	for _, r := range records {
		status := "yes"
		if !r.OK {
			status = "no"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Tool, r.Category, status, r.Duration.Round(time.Millisecond), r.Error))
	}

	return b.String()
}

// ExportJSON renders audit records as formatted JSON.
func ExportJSON(records []CallRecord) ([]byte, error) {
	export := struct {
		Calls []CallRecord `json:"calls"`
	}{Calls: records}
	return json.MarshalIndent(export, "", "  ")
}
