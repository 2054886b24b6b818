// Package main is the entry point for sorare-bot.
package main

import (
	"os"

	"github.com/donaldgifford/sorare-listing-bot/cmd/sorare-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
