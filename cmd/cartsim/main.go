package main

import (
	"fmt"
	"os"

	"github.com/dwikikusuma/cartsim/pkg/config"
)

func main() {
	if err := newApp(config.Load()).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cartsim:", err)
		os.Exit(1)
	}
}
