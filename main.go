package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fintechlabs/teller/internal/app"
)

func main() {
	application := app.New() // Initialize the application
	if err := application.Run(context.Background()); err != nil {
		slog.Error("application stopped with error", "error", err)
		os.Exit(1)
	}
}
