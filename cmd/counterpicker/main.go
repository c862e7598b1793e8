// counterpicker keeps hero and item catalogs in sync with the wiki and
// recommends counter picks against an opposing team.
//
// Usage:
//
//	counterpicker fetch
//	counterpicker clean
//	counterpicker enrich [--catalog heroes] [--every 24h]
//	counterpicker split
//	counterpicker recommend --hero Layla --vs Tigreal --vs Eudora [--role Marksman]
//	counterpicker history [--catalog items] [--limit 20]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
