// Command server runs the development catalog API: an in-memory or
// PostgreSQL-backed stand-in for the validation service.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/modelcatalog/internal/buildinfo"
	"github.com/dmitrijs2005/modelcatalog/internal/server"
	"github.com/dmitrijs2005/modelcatalog/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("server init: %v", err)
	}

	// Run installs its own SIGINT/SIGTERM handler.
	app.Run(context.Background())

}
