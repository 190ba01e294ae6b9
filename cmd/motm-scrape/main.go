package main

import (
	"motm-scrapers/cmd/motm-scrape/commands"
	"motm-scrapers/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
