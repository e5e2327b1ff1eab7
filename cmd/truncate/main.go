package main

import (
	"github.com/joho/godotenv"

	"github.com/TruncateGame/Truncate-sub000/internal/cli"
)

func main() {
	// Optional .env file supplies TRUNCATE_* settings; absence is fine
	_ = godotenv.Load()

	cli.Execute()
}
