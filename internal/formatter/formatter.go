// package formatter renders search results and conversion history for CLI output (styled text, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/castaway/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// SearchResultsText renders ranked search results as a numbered styled list.
func SearchResultsText(query string, results []models.SearchResult) string {
	var buf strings.Builder

	buf.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", query)))
	buf.WriteString("\n\n")

	if len(results) == 0 {
		buf.WriteString(mutedStyle.Render("no results"))
		buf.WriteString("\n")
		return buf.String()
	}

	for i, result := range results {
		buf.WriteString(fmt.Sprintf("%2d. %s\n", i+1, result.Title))
		meta := []string{result.Channel}
		if result.Duration != "" {
			meta = append(meta, result.Duration)
		}
		if result.ViewCount > 0 {
			meta = append(meta, fmt.Sprintf("%d views", result.ViewCount))
		}
		if result.UploadDate != "" {
			meta = append(meta, result.UploadDate)
		}
		buf.WriteString("    " + mutedStyle.Render(strings.Join(meta, " · ")) + "\n")
		buf.WriteString("    " + detailStyle.Render(result.URL) + "\n")
	}

	return buf.String()
}

// SearchResultsCSV converts search results to CSV with columns: Rank, Title, URL, Duration, Channel, ViewCount, UploadDate
func SearchResultsCSV(results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Title", "URL", "Duration", "Channel", "ViewCount", "UploadDate"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, result := range results {
		record := []string{
			strconv.Itoa(i + 1),
			result.Title,
			result.URL,
			result.Duration,
			result.Channel,
			strconv.FormatInt(result.ViewCount, 10),
			result.UploadDate,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryText renders conversion history rows as a styled list, newest first.
func HistoryText(conversions []*models.Conversion) string {
	var buf strings.Builder

	buf.WriteString(titleStyle.Render("Conversion history"))
	buf.WriteString("\n\n")

	if len(conversions) == 0 {
		buf.WriteString(mutedStyle.Render("no conversions recorded"))
		buf.WriteString("\n")
		return buf.String()
	}

	for _, c := range conversions {
		status := okStyle.Render(c.Status())
		if c.Status() == models.ConversionFailed {
			status = errStyle.Render(fmt.Sprintf("%s (%s)", c.Status(), c.Stage()))
		}

		title := c.Title()
		if title == "" {
			title = c.SourceURL()
		}

		buf.WriteString(fmt.Sprintf("%s  %s\n", status, title))
		buf.WriteString("    " + mutedStyle.Render(fmt.Sprintf("%s · %s · %s", c.Platform(), c.SourceURL(), c.CreatedAt().Format("2006-01-02 15:04"))) + "\n")
		if c.AudioURL() != "" {
			buf.WriteString("    " + detailStyle.Render(c.AudioURL()) + "\n")
		}
		if c.Detail() != "" {
			buf.WriteString("    " + mutedStyle.Render(c.Detail()) + "\n")
		}
	}

	return buf.String()
}

// OutcomeText renders a single conversion outcome for the CLI.
func OutcomeText(outcome *models.ConversionOutcome) string {
	var buf strings.Builder
	buf.WriteString(okStyle.Render("conversion complete"))
	buf.WriteString("\n")
	buf.WriteString("audio:      " + outcome.AudioURL + "\n")
	if outcome.TranscriptURL != "" {
		buf.WriteString("transcript: " + outcome.TranscriptURL + "\n")
	}
	return buf.String()
}

// ToJSON marshals any value as indented JSON for CLI output.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
