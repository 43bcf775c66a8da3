package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dogtracer/dogtracer/internal/core/config"
	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/narrative"
	"github.com/dogtracer/dogtracer/internal/core/summary"
)

// GetDailySummaryArgs defines arguments for the get_daily_summary tool
type GetDailySummaryArgs struct {
	Date string `json:"date,omitempty" jsonschema:"description=Calendar date (YYYY-MM-DD, defaults to today)"`
}

// ListMomentsArgs defines arguments for the list_moments tool
type ListMomentsArgs struct {
	Date string `json:"date,omitempty" jsonschema:"description=Calendar date (YYYY-MM-DD, defaults to today)"`
}

// SearchMomentsArgs defines arguments for the search_moments tool
type SearchMomentsArgs struct {
	Query string `json:"query" jsonschema:"description=Search term to match against moment notes,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max moments to return (default: 20)"`
}

// MomentSummary represents a moment in tool output
type MomentSummary struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Tags      []string `json:"tags"`
	Notes     string   `json:"notes,omitempty"`
	Mood      string   `json:"mood,omitempty"`
	Place     string   `json:"place,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
}

// StartServer starts the MCP server
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	s := server.NewMCPServer(
		"DogTracer",
		"1.0.0",
	)

	summaryTool := mcp.NewTool("get_daily_summary",
		mcp.WithDescription("Generate the tone-adjusted daily summary for a date: overview statistics, timeline highlights, social map, behavior insights, and recommendations."),
		mcp.WithString("date",
			mcp.Description("Calendar date (YYYY-MM-DD, defaults to today)")),
	)
	s.AddTool(summaryTool, makeGetDailySummaryHandler(database))

	momentsTool := mcp.NewTool("list_moments",
		mcp.WithDescription("List the captured moments for a date with their tags, moods, and session assignments."),
		mcp.WithString("date",
			mcp.Description("Calendar date (YYYY-MM-DD, defaults to today)")),
	)
	s.AddTool(momentsTool, makeListMomentsHandler(database))

	searchTool := mcp.NewTool("search_moments",
		mcp.WithDescription("Full-text search over moment notes."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against moment notes")),
		mcp.WithNumber("limit",
			mcp.Description("Max moments to return (default: 20)")),
	)
	s.AddTool(searchTool, makeSearchMomentsHandler(database))

	return server.ServeStdio(s)
}

func resolveDate(arg string) string {
	if arg == "" {
		return time.Now().UTC().Format("2006-01-02")
	}
	return arg
}

func makeGetDailySummaryHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetDailySummaryArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		date := resolveDate(args.Date)

		moments, err := database.MomentsByDate(date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load moments: %v", err)), nil
		}
		if len(moments) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(`{"date":%q,"empty":true}`, date)), nil
		}

		sessions, err := database.SessionsByDate(date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load sessions: %v", err)), nil
		}
		profile, err := database.Profile()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
		}

		cfg, _ := config.Load()
		bank := narrative.LoadBank(cfg.TemplatesDir)

		result := summary.Generate(summary.Input{
			Date:     date,
			Moments:  moments,
			Sessions: sessions,
			Profile:  profile,
		}, database, bank)

		resultJSON, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeListMomentsHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListMomentsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		date := resolveDate(args.Date)

		moments, err := database.MomentsByDate(date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		out := make([]MomentSummary, 0, len(moments))
		for _, m := range moments {
			tags := make([]string, len(m.Tags))
			for i, t := range m.Tags {
				tags[i] = string(t)
			}
			ms := MomentSummary{
				ID:        m.ID,
				Date:      m.DateKey(),
				Time:      m.Timestamp.Format("15:04"),
				Tags:      tags,
				Notes:     m.Notes,
				Mood:      string(m.Mood),
				SessionID: m.SessionID,
			}
			if m.GPS != nil {
				ms.Place = m.GPS.PlaceLabel
			}
			out = append(out, ms)
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"date":    date,
			"moments": out,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeSearchMomentsHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchMomentsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		moments, err := database.SearchMoments(args.Query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		out := make([]MomentSummary, 0, len(moments))
		for _, m := range moments {
			tags := make([]string, len(m.Tags))
			for i, t := range m.Tags {
				tags[i] = string(t)
			}
			out = append(out, MomentSummary{
				ID:    m.ID,
				Date:  m.DateKey(),
				Time:  m.Timestamp.Format("15:04"),
				Tags:  tags,
				Notes: m.Notes,
				Mood:  string(m.Mood),
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"moments": out,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
