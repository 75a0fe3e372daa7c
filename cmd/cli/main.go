package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/tokengate/internal/client/cli"
	"github.com/dmitrijs2005/tokengate/internal/client/config"
	"github.com/fatih/color"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "N/A"

func main() {

	fmt.Fprintf(os.Stdout, "Build version: %s\n", color.CyanString(buildVersion))

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
