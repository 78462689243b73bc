package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("accel-platform exited")
		os.Exit(1)
	}
}
