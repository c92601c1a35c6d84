package main

import (
	"os"

	"github.com/frherrer/docx2testlink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
