// AngelaMos | 2026
// main.go

package main

import (
	"fmt"
	"os"

	"github.com/amontalvo1020/rentalspro/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
