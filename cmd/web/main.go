package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"licsim/internal/app"
	"licsim/internal/db"
)

func main() {
	cfg := app.LoadConfig()

	ctx := context.Background()
	dbConn, err := db.Open(ctx, cfg.PortalDBPath)
	if err != nil {
		log.Printf("database error: %v", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.Migrate(ctx, dbConn); err != nil {
		log.Printf("migration error: %v", err)
		os.Exit(1)
	}

	r := app.NewRouter(cfg, dbConn)

	log.Printf("licsim web listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}
