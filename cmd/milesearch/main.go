package main

import (
	"context"
	"os"
	"time"

	"milesearch-backend/cmd/milesearch/commands"
	"milesearch-backend/lib/serviceutil"
	"milesearch-backend/lib/telemetry"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	t, err := telemetry.SetupFromEnv(ctx, "milesearch")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx, time.Second*30)

	code := commands.ExecuteContext(ctx, commands.Options{})
	t.Shutdown(context.Background())
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}
