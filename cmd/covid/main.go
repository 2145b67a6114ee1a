package main

import (
	"os"

	"github.com/wonny/covid-europe/cmd/covid/commands"
)

// main is the entry point for the covid CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/covid [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
