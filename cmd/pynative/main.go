package main

import (
	"os"

	"github.com/pynative/pynative/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Args[1:]))
}
