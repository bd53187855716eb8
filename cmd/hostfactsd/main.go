package main

import (
	"log"

	"github.com/hostfacts/hostfacts/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
