// ABOUTME: MCP tool implementations for the health diary.
// ABOUTME: Logs, stats, feedback, profile, vaccinations and MBTI job lookup.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/diary/internal/journal"
	"github.com/harperreed/diary/internal/mbti"
	"github.com/harperreed/diary/internal/models"
	"github.com/harperreed/diary/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	// log_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_day",
		Description: "Record or replace the health log for a day (sleep, mood, symptoms, water, memo)",
	}, s.handleLogDay)

	// get_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the health log for a single day",
	}, s.handleGetDay)

	// list_logs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_logs",
		Description: "List recent daily logs, newest first",
	}, s.handleListLogs)

	// delete_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_day",
		Description: "Delete the log for a day; deleting a day with no log is a no-op",
	}, s.handleDeleteDay)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Average sleep, stress and water plus top symptoms for the last week or this month",
	}, s.handleGetStats)

	// get_feedback
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_feedback",
		Description: "Threshold feedback on this month's sleep and stress averages",
	}, s.handleGetFeedback)

	// update_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_profile",
		Description: "Update name, height or weight; BMI is recomputed",
	}, s.handleUpdateProfile)

	// add_vaccination
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_vaccination",
		Description: "Record a vaccination",
	}, s.handleAddVaccination)

	// delete_vaccination
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_vaccination",
		Description: "Delete a vaccination by ID or ID prefix",
	}, s.handleDeleteVaccination)

	// lookup_jobs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "lookup_jobs",
		Description: "Recommended jobs for an MBTI personality type",
	}, s.handleLookupJobs)
}

// Tool input/output types

type logDayInput struct {
	Date         string   `json:"date,omitempty" jsonschema:"Day to log as YYYY-MM-DD, defaults to today"`
	SleepHours   *float64 `json:"sleep_hours,omitempty" jsonschema:"Hours slept, 0 to 24"`
	Mood         string   `json:"mood,omitempty" jsonschema:"Mood/stress level: low, normal, sad or high"`
	Symptoms     []string `json:"symptoms,omitempty" jsonschema:"Symptoms: headache, stomachache, fatigue, cough, runny_nose, muscle_pain or none"`
	WaterGlasses *int     `json:"water_glasses,omitempty" jsonschema:"Glasses of water, 0 to 30"`
	Memo         string   `json:"memo,omitempty" jsonschema:"Free-text note"`
}

type logView struct {
	Date         string   `json:"date"`
	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	Mood         string   `json:"mood,omitempty"`
	MoodLabel    string   `json:"mood_label,omitempty"`
	StressScore  *int     `json:"stress_score,omitempty"`
	Symptoms     []string `json:"symptoms"`
	WaterGlasses *int     `json:"water_glasses,omitempty"`
	Memo         string   `json:"memo,omitempty"`
}

type logDayOutput struct {
	Log      logView `json:"log"`
	Replaced bool    `json:"replaced"`
	Message  string  `json:"message"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Day as YYYY-MM-DD"`
}

type getDayOutput struct {
	Found   bool     `json:"found"`
	Log     *logView `json:"log,omitempty"`
	Message string   `json:"message"`
}

type listLogsInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Since string `json:"since,omitempty" jsonschema:"Only logs on or after this YYYY-MM-DD date"`
}

type listLogsOutput struct {
	Logs  []logView `json:"logs"`
	Count int       `json:"count"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type deleteDayOutput struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

type statsInput struct {
	Window string `json:"window,omitempty" jsonschema:"week (last 7 days) or month (this calendar month), defaults to week"`
}

type emptyInput struct{}

type feedbackOutput struct {
	Feedback []stats.Feedback `json:"feedback"`
	Message  string           `json:"message"`
}

type updateProfileInput struct {
	Name     *string  `json:"name,omitempty" jsonschema:"Display name"`
	HeightCM *float64 `json:"height_cm,omitempty" jsonschema:"Height in cm, 0 to 250 (0 clears)"`
	WeightKG *float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kg, 0 to 300 (0 clears)"`
}

type profileOutput struct {
	Name         string            `json:"name"`
	HeightCM     *float64          `json:"height_cm,omitempty"`
	WeightKG     *float64          `json:"weight_kg,omitempty"`
	BMI          *float64          `json:"bmi,omitempty"`
	Vaccinations []vaccinationView `json:"vaccinations"`
}

type addVaccinationInput struct {
	Name string `json:"name" jsonschema:"Vaccine name"`
	Date string `json:"date" jsonschema:"Date given as YYYY-MM-DD"`
}

type deleteVaccinationInput struct {
	ID string `json:"id" jsonschema:"Vaccination ID or prefix"`
}

type vaccinationView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type vaccinationOutput struct {
	Vaccination vaccinationView `json:"vaccination"`
	Message     string          `json:"message"`
}

type lookupJobsInput struct {
	Type string `json:"type" jsonschema:"MBTI type such as INTP (case-insensitive)"`
}

type lookupJobsOutput struct {
	Type string     `json:"type"`
	Jobs []mbti.Job `json:"jobs"`
}

func newLogView(l models.DailyLog) logView {
	v := logView{
		Date:         l.Date,
		SleepHours:   l.SleepHours,
		Mood:         string(l.StressLabel),
		StressScore:  l.StressScore,
		Symptoms:     l.Symptoms,
		WaterGlasses: l.WaterGlasses,
		Memo:         l.Memo,
	}
	if l.StressLabel != "" {
		v.MoodLabel = l.StressLabel.Label()
	}
	if v.Symptoms == nil {
		v.Symptoms = []string{}
	}
	return v
}

func newProfileOutput(p models.Profile) profileOutput {
	out := profileOutput{
		Name:         p.Name,
		HeightCM:     p.HeightCM,
		WeightKG:     p.WeightKG,
		BMI:          p.BMI,
		Vaccinations: []vaccinationView{},
	}
	for _, v := range p.SortedVaccinations() {
		out.Vaccinations = append(out.Vaccinations, newVaccinationView(v))
	}
	return out
}

func newVaccinationView(v models.Vaccination) vaccinationView {
	return vaccinationView{ID: v.ID.String()[:8], Name: v.Name, Date: v.Date}
}

// Tool handlers

func (s *Server) handleLogDay(ctx context.Context, req *mcp.CallToolRequest, input logDayInput) (*mcp.CallToolResult, logDayOutput, error) {
	date := input.Date
	if date == "" {
		date = models.FormatDate(s.journal.Now())
	}

	l := models.DailyLog{
		Date:         date,
		SleepHours:   input.SleepHours,
		StressLabel:  models.Mood(strings.ToLower(strings.TrimSpace(input.Mood))),
		Symptoms:     input.Symptoms,
		WaterGlasses: input.WaterGlasses,
		Memo:         input.Memo,
	}

	replaced, err := s.journal.Upsert(l)
	if err != nil {
		return nil, logDayOutput{}, fmt.Errorf("failed to log day: %w", err)
	}

	saved, _ := s.journal.Get(date)
	verb := "Logged"
	if replaced {
		verb = "Replaced"
	}
	s.logger.Debug("log_day", zap.String("date", saved.Date), zap.Bool("replaced", replaced))

	return nil, logDayOutput{
		Log:      newLogView(saved),
		Replaced: replaced,
		Message:  fmt.Sprintf("%s %s", verb, saved.Date),
	}, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, getDayOutput, error) {
	if _, err := models.ParseDate(input.Date); err != nil {
		return nil, getDayOutput{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", input.Date)
	}

	l, ok := s.journal.Get(input.Date)
	if !ok {
		return nil, getDayOutput{Message: fmt.Sprintf("No log for %s.", input.Date)}, nil
	}

	v := newLogView(l)
	return nil, getDayOutput{Found: true, Log: &v, Message: fmt.Sprintf("Log for %s", l.Date)}, nil
}

func (s *Server) handleListLogs(ctx context.Context, req *mcp.CallToolRequest, input listLogsInput) (*mcp.CallToolResult, listLogsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	logs := s.journal.Recent(0)
	if input.Since != "" {
		since, err := models.ParseDate(input.Since)
		if err != nil {
			return nil, listLogsOutput{}, fmt.Errorf("invalid since date %q (use YYYY-MM-DD)", input.Since)
		}
		logs = stats.Since(logs, models.FormatDate(since))
	}
	if len(logs) > input.Limit {
		logs = logs[:input.Limit]
	}

	out := listLogsOutput{Logs: make([]logView, 0, len(logs)), Count: len(logs)}
	for _, l := range logs {
		out.Logs = append(out.Logs, newLogView(l))
	}
	return nil, out, nil
}

func (s *Server) handleDeleteDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, deleteDayOutput, error) {
	deleted, err := s.journal.Delete(input.Date)
	if err != nil {
		return nil, deleteDayOutput{}, fmt.Errorf("failed to delete day: %w", err)
	}

	if !deleted {
		return nil, deleteDayOutput{Message: fmt.Sprintf("No log for %s, nothing deleted.", input.Date)}, nil
	}
	return nil, deleteDayOutput{Deleted: true, Message: fmt.Sprintf("Deleted log for %s", input.Date)}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, stats.Summary, error) {
	w := stats.WindowWeek
	if input.Window != "" {
		parsed, err := stats.ParseWindow(input.Window)
		if err != nil {
			return nil, stats.Summary{}, err
		}
		w = parsed
	}

	return nil, s.journal.Summary(w), nil
}

func (s *Server) handleGetFeedback(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, feedbackOutput, error) {
	fb := s.journal.Feedback()
	if len(fb) == 0 {
		return nil, feedbackOutput{Feedback: fb, Message: "Not enough data this month for feedback."}, nil
	}

	msgs := make([]string, 0, len(fb))
	for _, f := range fb {
		msgs = append(msgs, f.Message)
	}
	return nil, feedbackOutput{Feedback: fb, Message: strings.Join(msgs, "\n")}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	p, err := s.journal.UpdateProfile(journal.ProfileUpdate{
		Name:     input.Name,
		HeightCM: input.HeightCM,
		WeightKG: input.WeightKG,
	})
	if err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return nil, newProfileOutput(p), nil
}

func (s *Server) handleAddVaccination(ctx context.Context, req *mcp.CallToolRequest, input addVaccinationInput) (*mcp.CallToolResult, vaccinationOutput, error) {
	v, err := s.journal.AddVaccination(input.Name, input.Date)
	if err != nil {
		return nil, vaccinationOutput{}, fmt.Errorf("failed to add vaccination: %w", err)
	}

	view := newVaccinationView(v)
	return nil, vaccinationOutput{
		Vaccination: view,
		Message:     fmt.Sprintf("Added %s on %s (ID: %s)", v.Name, v.Date, view.ID),
	}, nil
}

func (s *Server) handleDeleteVaccination(ctx context.Context, req *mcp.CallToolRequest, input deleteVaccinationInput) (*mcp.CallToolResult, simpleOutput, error) {
	v, err := s.journal.DeleteVaccination(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete vaccination: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted vaccination: %s (%s)", v.Name, v.Date),
	}, nil
}

func (s *Server) handleLookupJobs(ctx context.Context, req *mcp.CallToolRequest, input lookupJobsInput) (*mcp.CallToolResult, lookupJobsOutput, error) {
	jobs, ok := mbti.Lookup(input.Type)
	if !ok {
		return nil, lookupJobsOutput{}, fmt.Errorf("unknown MBTI type %q (one of %s)", input.Type, strings.Join(mbti.Types(), ", "))
	}

	return nil, lookupJobsOutput{
		Type: strings.ToUpper(strings.TrimSpace(input.Type)),
		Jobs: jobs,
	}, nil
}
