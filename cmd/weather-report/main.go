package main

import (
	"fmt"
	"os"

	"github.com/i474232898/weather-report/internal/cli"
)

func main() {
	if err := cli.New(cli.Options{Output: os.Stdout}).Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erreur: %v\n", err)
		os.Exit(1)
	}
}
