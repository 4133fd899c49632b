package main

import (
	"github.com/joho/godotenv"

	"github.com/tas-github/ogeemo-timekeeper/cmd/timekeeper/commands"
)

func main() {
	// Optional .env for TIMEKEEPER_* overrides; absence is fine.
	_ = godotenv.Load()

	commands.Execute()
}
