package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/pkg/config"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReportList is the output of list_reports.
type ReportList struct {
	Reports []string `json:"reports" jsonschema_description:"IDs of finished reports"`
}

// scenarioKeys are the run_scenario arguments copied into the scenario.
var scenarioKeys = []string{
	"label", "min_bet", "odds_multiple", "initial_bankroll", "n_trials",
	"grow_bets", "grow_odds", "odds_off_without_point", "rng_seed",
	"max_come_bets", "odds_schedule", "max_rolls",
}

// Server exposes a Simulator as MCP tools.
type Server struct {
	sim       ports.Simulator
	logger    *slog.Logger
	defaults  domain.Scenario
	maxTrials int
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaults sets the scenario tool arguments are layered over.
func WithDefaults(sc domain.Scenario) Option {
	return func(s *Server) {
		s.defaults = sc
	}
}

// WithMaxTrials rejects scenarios asking for more than n trials. Zero disables the cap.
func WithMaxTrials(n int) Option {
	return func(s *Server) {
		s.maxTrials = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sim ports.Simulator, opts ...Option) *Server {
	s := &Server{
		sim:       sim,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults:  config.Default(),
		mcpServer: server.NewMCPServer("crapsim-mcp", strings.TrimSpace(crapsim.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over Server-Sent Events on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
	}))
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_scenario",
		mcp.WithDescription("Simulate craps sessions played to ruin (pass line, come bets and maximum odds) and return quantiles of rolls survived and peak bankroll. Omitted parameters use the server defaults."),
		mcp.WithString("label", mcp.Description("Name for the scenario")),
		mcp.WithNumber("min_bet", mcp.Description("Table minimum in units")),
		mcp.WithNumber("odds_multiple", mcp.Description("Maximum odds multiple")),
		mcp.WithNumber("initial_bankroll", mcp.Description("Starting bankroll in units")),
		mcp.WithNumber("n_trials", mcp.Description("Number of sessions to play")),
		mcp.WithBoolean("grow_bets", mcp.Description("Grow the flat bet with the bankroll")),
		mcp.WithBoolean("grow_odds", mcp.Description("Grow odds with the flat bet")),
		mcp.WithBoolean("odds_off_without_point", mcp.Description("Come odds are off on come-out rolls")),
		mcp.WithString("rng_seed", mcp.Description("Seed for a reproducible run, as a decimal string (0 to 18446744073709551615)")),
		mcp.WithNumber("max_come_bets", mcp.Description("Come bets kept working at once")),
		mcp.WithString("odds_schedule", mcp.Description("ladder (1-2-3) or flat")),
		mcp.WithNumber("max_rolls", mcp.Description("Stop a session after this many rolls")),
		mcp.WithOutputSchema[domain.ReportSummary](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunScenario))

	getTool := mcp.NewTool("get_report",
		mcp.WithDescription("Fetch the quantiles of a finished scenario by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Report ID returned by run_scenario")),
		mcp.WithOutputSchema[domain.ReportSummary](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetReport))

	listTool := mcp.NewTool("list_reports",
		mcp.WithDescription("List the IDs of finished scenarios."),
		mcp.WithOutputSchema[ReportList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListReports))
}

func (s *Server) handleRunScenario(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ReportSummary, error) {
	raw := make(map[string]any, len(args))
	for _, k := range scenarioKeys {
		if v, ok := args[k]; ok && v != nil {
			raw[k] = v
		}
	}

	if v, ok := raw["rng_seed"]; ok {
		seed, err := seedArg(v)
		if err != nil {
			return domain.ReportSummary{}, err
		}
		raw["rng_seed"] = seed
	}

	sc, err := config.Decode(s.defaults, raw)
	if err != nil {
		return domain.ReportSummary{}, err
	}
	if s.maxTrials > 0 && sc.Trials > s.maxTrials {
		return domain.ReportSummary{}, &config.ValidationError{
			Field:  "n_trials",
			Reason: fmt.Sprintf("must be at most %d on this server", s.maxTrials),
			Value:  sc.Trials,
		}
	}

	report, err := s.sim.Simulate(ctx, sc)
	if err != nil {
		if !errors.Is(err, config.ErrInvalidConfig) {
			s.logger.Error("MCP run_scenario failed", "error", err)
		}
		return domain.ReportSummary{}, fmt.Errorf("run_scenario: %w", err)
	}
	return report.Summary(), nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ReportSummary, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return domain.ReportSummary{}, errors.New("id is required")
	}
	report, err := s.sim.Report(ctx, id)
	if err != nil {
		return domain.ReportSummary{}, fmt.Errorf("get_report: %w", err)
	}
	return report.Summary(), nil
}

func (s *Server) handleListReports(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ReportList, error) {
	ids, err := s.sim.Reports(ctx)
	if err != nil {
		return ReportList{}, fmt.Errorf("list_reports: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ReportList{Reports: ids}, nil
}

// maxExactSeed is the largest seed a JSON number carries without rounding.
const maxExactSeed = 1 << 53

// seedArg reads rng_seed as sent by a client: a decimal string covers the
// full uint64 range, a number only integers up to 2^53.
func seedArg(v any) (uint64, error) {
	invalid := func(reason string) error {
		return &config.ValidationError{Field: "rng_seed", Reason: reason, Value: v}
	}
	switch x := v.(type) {
	case string:
		seed, err := strconv.ParseUint(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, invalid("must be an unsigned 64-bit integer")
		}
		return seed, nil
	case float64:
		if x < 0 || x != math.Trunc(x) {
			return 0, invalid("must be a non-negative integer")
		}
		if x > maxExactSeed {
			return 0, invalid("numbers above 2^53 lose precision, send the seed as a string")
		}
		return uint64(x), nil
	case json.Number:
		return seedArg(x.String())
	default:
		return 0, invalid("must be a string or a number")
	}
}
