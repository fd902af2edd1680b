package main

import (
	"os"

	"personal-library/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error(err, "Command failed", nil)
		os.Exit(1)
	}
}
