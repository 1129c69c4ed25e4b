package main

import (
	"fmt"
	"os"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
