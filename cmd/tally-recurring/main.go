// tally-recurring materializes due occurrences from recurring templates
// and exits. Run it from cron or a timer unit.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tally/internal/cli"
	"tally/internal/log"
	"tally/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel)

	logger.Info("Starting recurring materializer", log.FieldBackend, cfg.DataBackend)

	ctx := context.Background()
	app := cli.InitApp(ctx, cfg, logger)
	defer app.Close()

	processor := services.NewRecurringProcessor(app.Store, logger)
	count, err := processor.MaterializeDue(ctx, time.Now())
	if err != nil {
		logger.Error("Materialization failed", log.FieldError, err)
		os.Exit(1)
	}

	fmt.Printf("materialized %d occurrence(s)\n", count)
}
