package main

import (
	"os"

	"github.com/ronmurphy/iconstudio/internal/cli"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

func main() {
	stopProfiling := startProfiling()
	cmd := cli.InitCLI()
	err := cmd.Execute()
	stopProfiling()
	if err != nil {
		logrus.Error(err)
		os.Exit(int(model.ExitCodeFor(err)))
	}
}
