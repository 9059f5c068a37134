package main

import (
	"os"

	"github.com/Ikaros-521/LX-IMG-Confusion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
