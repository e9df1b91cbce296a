package main

import (
	"context"
	"log"

	"merx/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Run the campaign window sweep on an interval.
func main() {
	log.Println("merx worker starting")
	app, err := bootstrap.BuildWorker(context.Background())
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("merx worker stopped with error: %v", err)
	}
}
