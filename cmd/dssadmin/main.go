package main

import (
	"os"

	"github.com/quarrylabs/dss-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
