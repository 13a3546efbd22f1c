package main

import (
	"os"

	"leadsweb/cli"

	"github.com/rohanthewiz/logger"
)

func main() {
	// Level is replaced from config once a command runs
	logger.SetLogLevel("info")

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
