// Command fleetadvisor fetches the managed-device inventory from Jamf Pro,
// computes a compliance snapshot against the configured policy, and asks
// Gemini for a posture summary, remediation plan, and Slack message.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/fleetadvisor/internal/advisor"
	"github.com/HerbHall/fleetadvisor/internal/compliance"
	"github.com/HerbHall/fleetadvisor/internal/config"
	"github.com/HerbHall/fleetadvisor/internal/jamf"
	"github.com/HerbHall/fleetadvisor/internal/llm/gemini"
	"github.com/HerbHall/fleetadvisor/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	maxDevices := flag.Int("max-devices", 0, "maximum number of devices to fetch (0 = use config)")
	pageSize := flag.Int("page-size", 0, "inventory page size (0 = use config)")
	model := flag.String("model", "", "Gemini model to use (empty = use config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	fetchCap := *maxDevices
	if fetchCap <= 0 {
		fetchCap = cfg.GetInt("fetch.max_devices")
	}
	size := *pageSize
	if size <= 0 {
		size = cfg.GetInt("fetch.page_size")
	}
	modelName := *model
	if modelName == "" {
		modelName = cfg.GetString("gemini.model")
	}

	client, err := jamf.NewClient(jamf.ClientConfig{
		BaseURL:           cfg.GetString("jamf.base_url"),
		ClientID:          cfg.GetString("jamf.client_id"),
		ClientSecret:      cfg.GetString("jamf.client_secret"),
		Timeout:           cfg.GetDuration("jamf.timeout"),
		RequestsPerSecond: cfg.GetFloat64("jamf.requests_per_second"),
	}, logger)
	if err != nil {
		logger.Fatal("invalid Jamf configuration", zap.Error(err))
	}

	devices, err := client.FetchInventory(ctx, fetchCap, size)
	if err != nil {
		logger.Fatal("inventory fetch failed", zap.Error(err))
	}
	if len(devices) == 0 {
		fmt.Println("No devices returned from Jamf Pro.")
		return
	}

	snapshot := compliance.BuildSnapshot(devices, cfg.Policy())
	logger.Info("built fleet snapshot",
		zap.Int("total_devices", snapshot.TotalDevices),
		zap.Int("noncompliant", snapshot.NoncompliantCount),
		zap.Float64("noncompliant_percentage", snapshot.NoncompliantPercentage),
	)

	provider, err := gemini.New(ctx, gemini.Config{
		APIKey: cfg.GetString("gemini.api_key"),
		Model:  modelName,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize Gemini provider", zap.Error(err))
	}

	adv := advisor.New(provider, cfg.GetString("slack.title"), logger)
	advice, err := adv.AnalyzeFleet(ctx, snapshot)
	if err != nil {
		logger.Fatal("fleet analysis failed", zap.Error(err))
	}

	printSection("Endpoint Posture Summary", advice.Summary)
	printSection("Remediation Plan", advice.RemediationPlan)
	printSection("Slack Message", advice.SlackMessage)
}

func printSection(title, body string) {
	fmt.Printf("=== %s ===\n\n", title)
	fmt.Println(strings.TrimSpace(body))
	fmt.Println()
}
