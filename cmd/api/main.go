package main

import (
	"fmt"
	"os"

	"github.com/Behramm10/Cine-Flow/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
