package main

import (
	"os"

	"github.com/asenetcky/complementary-suppression/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
