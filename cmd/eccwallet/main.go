package main

import (
	"fmt"
	"os"

	"github.com/sonnyparlin/eccwallet/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger level comes from cfg, so there is no logger yet.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app, r := newApp(cfg)
	if err := app.Run(os.Args); err != nil {
		r.reportFailure(err)
		os.Exit(1)
	}
}
