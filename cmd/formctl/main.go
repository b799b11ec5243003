package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	cli "github.com/jawher/mow.cli"

	"formbot/internal/config"
	"formbot/internal/domain"
	"formbot/internal/metrics"
	"formbot/internal/services"
	"formbot/internal/store"
)

func main() {
	log.SetPrefix("[FORMCTL] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	app := cli.App("formctl", "Write and read form submissions")
	backend := app.StringOpt("backend", "", "Store backend: mongo, sql or memory (default from STORE_BACKEND)")
	uri := app.StringOpt("uri", "", "MongoDB connection URI (default from MONGO_URI)")
	dbName := app.StringOpt("db", "", "Database name (default from MONGO_DATABASE)")
	collection := app.StringOpt("collection", "", "Collection name (default from MONGO_COLLECTION)")

	var cfg *config.Config
	app.Before = func() {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fail("Failed to load config: %v", err)
		}
		if *backend != "" {
			cfg.Store.Backend = *backend
		}
		if *uri != "" {
			cfg.Mongo.URI = *uri
		}
		if *dbName != "" {
			cfg.Mongo.Database = *dbName
		}
		if *collection != "" {
			cfg.Mongo.Collection = *collection
		}
		if err := cfg.Validate(); err != nil {
			fail("Invalid options: %v", err)
		}
		if cfg.App.Debug {
			log.Printf("%s: store=%s database=%s collection=%s", cfg.App.Name, cfg.Store.Backend, cfg.Mongo.Database, cfg.Mongo.Collection)
		}
	}

	app.Command("insert", "Insert one submission", func(cmd *cli.Cmd) {
		sample := domain.SampleSubmission(time.Time{})
		company := cmd.StringOpt("company", sample.Company, "Company name")
		name := cmd.StringOpt("name", sample.Name, "Contact name")
		email := cmd.StringOpt("email", sample.Email, "Email")
		phone := cmd.StringOpt("phone", sample.Phone, "Phone")

		cmd.Action = func() {
			withService(cfg, func(ctx context.Context, svc *services.SubmissionService) error {
				res, err := svc.Submit(ctx, services.SubmitInput{
					Company: *company,
					Name:    *name,
					Email:   *email,
					Phone:   *phone,
				})
				if err != nil {
					return err
				}
				return printJSON(res)
			})
		}
	})

	app.Command("list", "List submissions", func(cmd *cli.Cmd) {
		limit := cmd.IntOpt("limit", 0, "Page size (default from QUERY_LIMIT)")
		skip := cmd.IntOpt("skip", 0, "Records to skip")
		all := cmd.BoolOpt("all", false, "Page through the whole collection, ignoring --limit and --skip")

		cmd.Action = func() {
			withService(cfg, func(ctx context.Context, svc *services.SubmissionService) error {
				var (
					subs []domain.FormSubmission
					err  error
				)
				if *all {
					subs, err = svc.ListAll(ctx)
				} else {
					subs, err = svc.List(ctx, *skip, *limit)
				}
				if err != nil {
					return err
				}
				return printJSON(subs)
			})
		}
	})

	app.Command("ping", "Check the store is reachable", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			withService(cfg, func(ctx context.Context, svc *services.SubmissionService) error {
				if err := svc.Ping(ctx); err != nil {
					return err
				}
				log.Printf("Store %s is reachable", cfg.Store.Backend)
				return nil
			})
		}
	})

	if err := app.Run(os.Args); err != nil {
		fail("%v", err)
	}
}

// withService opens the configured store, runs fn and exits non-zero on error
func withService(cfg *config.Config, fn func(context.Context, *services.SubmissionService) error) {
	ctx := context.Background()

	st, err := store.New(ctx, cfg)
	if err != nil {
		fail("Failed to open store: %v", err)
	}

	notifier := services.NewEmailService(&cfg.Email, cfg.App.Name)
	runErr := fn(ctx, services.NewSubmissionService(st, cfg.Store.QueryLimit, services.WithNotifier(notifier)))

	if err := st.Close(ctx); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			log.Printf("Failed to write metrics: %v", err)
		}
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(format string, args ...any) {
	log.Printf(format, args...)
	cli.Exit(1)
}
