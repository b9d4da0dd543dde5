// Package render prints a computed order for humans (text) or machines
// (json).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/taskorder/internal/api"
	"github.com/vk/taskorder/internal/task"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON}

// Write renders resp in the given format. tasks supplies the details shown
// next to each title in text mode and may be nil.
func Write(w io.Writer, format string, resp *api.ScheduleResponse, tasks []task.Task) error {
	switch format {
	case FormatJSON:
		return JSON(w, resp)
	case FormatText, "":
		return Text(w, resp, tasks)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes the HTTP success body.
func JSON(w io.Writer, resp *api.ScheduleResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Text writes a numbered list. Styling follows the color profile of w, so
// plain text is produced when w is not a terminal.
func Text(w io.Writer, resp *api.ScheduleResponse, tasks []task.Task) error {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	indexStyle := r.NewStyle().Foreground(lipgloss.Color("#999999"))
	detailStyle := r.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))

	var b strings.Builder
	header := "Recommended order"
	if resp.ProjectID != "" {
		header += " for " + resp.ProjectID
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(resp.RecommendedOrder) == 0 {
		b.WriteString(detailStyle.Render("  (no tasks)"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	byTitle := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byTitle[t.Title] = t
	}

	numWidth := len(strconv.Itoa(len(resp.RecommendedOrder)))
	titleWidth := 0
	for _, title := range resp.RecommendedOrder {
		titleWidth = max(titleWidth, lipgloss.Width(title))
	}
	titleStyle := r.NewStyle().Width(titleWidth)

	for i, title := range resp.RecommendedOrder {
		b.WriteString("  ")
		b.WriteString(indexStyle.Render(fmt.Sprintf("%*d.", numWidth, i+1)))
		b.WriteString(" ")
		t, ok := byTitle[title]
		if !ok {
			b.WriteString(title)
			b.WriteString("\n")
			continue
		}
		b.WriteString(titleStyle.Render(title))
		b.WriteString("  ")
		b.WriteString(detailStyle.Render(details(t)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func details(t task.Task) string {
	s := fmt.Sprintf("due %s, %sh", t.DueDate, strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64))
	if deps := t.UniqueDependencies(); len(deps) > 0 {
		s += ", after " + strings.Join(deps, ", ")
	}
	return s
}
