package main

import (
	"os"

	"github.com/fatura-dev/fatura/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
