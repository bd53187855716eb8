package main

import (
	"github.com/hostfacts/hostfacts/pkg/cli"
)

func main() {
	cli.Execute()
}
