// Command gofpsat is the solver's command-line entry point: resolve the
// flag set into a config.Config, run it through internal/driver, and exit
// with the code the run produced.
package main

import (
	"fmt"
	"os"

	"gofpsat/internal/config"
	"gofpsat/internal/driver"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "gofpsat:", err)
		config.Usage()
		os.Exit(1)
	}

	os.Exit(driver.New().Run(cfg, os.Stdout))
}
