package main

import (
	"os"

	"github.com/dmitrijs2005/facekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/facekeeper/internal/cli"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)
	cli.Execute()
}
