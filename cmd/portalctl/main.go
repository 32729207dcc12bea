package main

import (
	"os"

	"github.com/joho/godotenv"

	"rentwise-portal/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
