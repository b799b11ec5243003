// Command playground inserts the sample submission into telegram_bot_db and
// prints the first page of form_submissions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"formbot/internal/config"
	"formbot/internal/domain"
	"formbot/internal/metrics"
	"formbot/internal/services"
	"formbot/internal/store"
)

func main() {
	log.SetPrefix("[PLAYGROUND] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Starting %s playground (store=%s)", cfg.App.Name, cfg.Store.Backend)

	ctx := context.Background()

	st, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	svc := services.NewSubmissionService(st, cfg.Store.QueryLimit,
		services.WithNotifier(services.NewEmailService(&cfg.Email, cfg.App.Name)))

	runErr := run(ctx, svc, cfg.Store.QueryLimit)

	if err := st.Close(ctx); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			log.Printf("Failed to write metrics: %v", err)
		}
	}
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}
}

func run(ctx context.Context, svc *services.SubmissionService, limit int) error {
	// Optional test insert
	sample := domain.SampleSubmission(time.Time{})
	res, err := svc.Submit(ctx, services.SubmitInput{
		Company: sample.Company,
		Name:    sample.Name,
		Email:   sample.Email,
		Phone:   sample.Phone,
	})
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	fmt.Printf("Inserted submission %s\n", res.ID)

	// See all entries, first page only
	subs, err := svc.List(ctx, 0, limit)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(subs); err != nil {
		return fmt.Errorf("failed to print submissions: %w", err)
	}
	if len(subs) == limit {
		fmt.Printf("Showing the first %d submissions; use formctl list --all for the rest\n", len(subs))
	}
	return nil
}
