package main

import (
	"os"

	"github.com/ehsaniara/ezbatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
