package main

import (
	"embed"
	"os"

	"riftstats/internal/delivery/cli"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	os.Exit(int(cli.Run(migrationFS)))
}
