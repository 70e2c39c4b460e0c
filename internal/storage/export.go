// ABOUTME: Export and import functionality for journal data.
// ABOUTME: Supports JSON, YAML, Markdown, and CSV (tabular rows) formats.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/stats"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format. It decodes with
// DecodeDocument like a stored document.
type ExportData struct {
	Version    int               `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Profile    models.Profile    `json:"profile" yaml:"profile"`
	Logs       []models.DailyLog `json:"logs" yaml:"logs"`
}

// CSVHeader is the column order of the tabular format.
var CSVHeader = []string{"date", "sleep", "mood", "symptoms", "memo"}

// NewExportData wraps a document for export.
func NewExportData(doc *models.Document, now time.Time) *ExportData {
	return &ExportData{
		Version:    models.DocumentVersion,
		ExportedAt: now,
		Tool:       "diary",
		Profile:    doc.Profile,
		Logs:       doc.Logs,
	}
}

// ExportJSON exports the whole document as JSON.
func ExportJSON(doc *models.Document, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewExportData(doc, now), "", "  ")
}

// ExportYAML exports the document as YAML with display-friendly log rows.
func ExportYAML(doc *models.Document, now time.Time) ([]byte, error) {
	yamlData := struct {
		Version    int           `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Profile    yamlProfile   `yaml:"profile"`
		Logs       []yamlLog     `yaml:"logs"`
		Month      stats.Summary `yaml:"this_month"`
	}{
		Version:    models.DocumentVersion,
		ExportedAt: now.Format(time.RFC3339),
		Tool:       "diary",
		Profile: yamlProfile{
			Name:     doc.Profile.Name,
			HeightCM: doc.Profile.HeightCM,
			WeightKG: doc.Profile.WeightKG,
			BMI:      doc.Profile.BMI,
		},
		Logs:  make([]yamlLog, 0, len(doc.Logs)),
		Month: stats.Summarize(doc.Logs, stats.WindowMonth, now),
	}

	for _, v := range doc.Profile.SortedVaccinations() {
		yamlData.Profile.Vaccinations = append(yamlData.Profile.Vaccinations, yamlVaccination{
			ID:   v.ID.String()[:8],
			Name: v.Name,
			Date: v.Date,
		})
	}

	for _, l := range doc.Logs {
		yl := yamlLog{
			Date:         l.Date,
			SleepHours:   l.SleepHours,
			WaterGlasses: l.WaterGlasses,
			Symptoms:     l.Symptoms,
			Memo:         l.Memo,
		}
		if l.StressLabel != "" {
			yl.Mood = l.StressLabel.Label()
		}
		yamlData.Logs = append(yamlData.Logs, yl)
	}

	return yaml.Marshal(yamlData)
}

type yamlProfile struct {
	Name         string            `yaml:"name,omitempty"`
	HeightCM     *float64          `yaml:"height_cm,omitempty"`
	WeightKG     *float64          `yaml:"weight_kg,omitempty"`
	BMI          *float64          `yaml:"bmi,omitempty"`
	Vaccinations []yamlVaccination `yaml:"vaccinations,omitempty"`
}

type yamlVaccination struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

type yamlLog struct {
	Date         string   `yaml:"date"`
	SleepHours   *float64 `yaml:"sleep_hours,omitempty"`
	Mood         string   `yaml:"mood,omitempty"`
	WaterGlasses *int     `yaml:"water_glasses,omitempty"`
	Symptoms     []string `yaml:"symptoms,omitempty"`
	Memo         string   `yaml:"memo,omitempty"`
}

// ExportMarkdown exports logs as Markdown tables. When since is set only
// logs on or after that date are included.
func ExportMarkdown(doc *models.Document, since *time.Time, now time.Time) string {
	logs := doc.Logs
	if since != nil {
		logs = stats.Since(logs, models.FormatDate(*since))
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Health Diary - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	p := doc.Profile
	if p.Name != "" || p.HeightCM != nil || p.WeightKG != nil {
		sb.WriteString("## Profile\n\n")
		sb.WriteString("| Name | Height | Weight | BMI |\n")
		sb.WriteString("|------|--------|--------|-----|\n")
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n\n",
			p.Name, optFloat(p.HeightCM, "%.1f cm"), optFloat(p.WeightKG, "%.1f kg"), optFloat(p.BMI, "%.2f")))
	}

	sb.WriteString("## Daily Logs\n\n")
	if len(logs) == 0 {
		sb.WriteString("No logs recorded.\n\n")
	} else {
		sb.WriteString("| Date | Sleep | Mood | Water | Symptoms | Memo |\n")
		sb.WriteString("|------|-------|------|-------|----------|------|\n")
		for _, l := range logs {
			mood := "-"
			if l.StressLabel != "" {
				mood = l.StressLabel.Label()
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				l.Date, optFloat(l.SleepHours, "%.1f h"), mood, optInt(l.WaterGlasses, "%d glasses"),
				l.SymptomsDisplay(), escapeCell(l.Memo)))
		}
		sb.WriteString("\n")
	}

	if counts := stats.SymptomFrequency(logs); len(counts) > 0 {
		sb.WriteString("## Symptom History\n\n")
		sb.WriteString("| Symptom | Count |\n")
		sb.WriteString("|---------|-------|\n")
		for _, c := range counts {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", c.Symptom, c.Count))
		}
		sb.WriteString("\n")
	}

	if vacs := p.SortedVaccinations(); len(vacs) > 0 {
		sb.WriteString("## Vaccinations\n\n")
		sb.WriteString("| Date | Vaccine |\n")
		sb.WriteString("|------|---------|\n")
		for _, v := range vacs {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", v.Date, escapeCell(v.Name)))
		}
	}

	return sb.String()
}

// ExportCSV writes logs as tabular rows: date, sleep, mood, symptoms, memo.
// Symptoms are joined with commas; water intake is not part of this shape.
func ExportCSV(w io.Writer, logs []models.DailyLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, l := range logs {
		sleep := ""
		if l.SleepHours != nil {
			sleep = strconv.FormatFloat(*l.SleepHours, 'f', -1, 64)
		}
		row := []string{l.Date, sleep, string(l.StressLabel), strings.Join(l.Symptoms, ","), l.Memo}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", l.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads tabular rows back into logs. Rows run through the same
// migration as stored records, so legacy mood labels are accepted.
func ImportCSV(r io.Reader) ([]models.DailyLog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["date"]; !ok {
		return nil, fmt.Errorf("missing date column")
	}

	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := cols[name]; ok && i < len(row) {
				return row[i]
			}
		}
		return ""
	}

	var logs []models.DailyLog
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		raw := map[string]any{
			"date":          field(row, "date"),
			"sleep_hours":   field(row, "sleep", "sleep_hours"),
			"stress_label":  field(row, "mood", "stress_label", "stress"),
			"symptoms":      field(row, "symptoms"),
			"water_glasses": field(row, "water", "water_glasses"),
			"memo":          field(row, "memo"),
		}
		if l, ok := MigrateLog(raw); ok {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// ImportJSON decodes an exported or stored JSON document.
func ImportJSON(data []byte) (*models.Document, error) {
	return DecodeDocument(data)
}

func optFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func optInt(v *int, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
