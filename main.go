package main

import (
	"os"

	"github.com/edi-build/edi/cmd"
	"github.com/edi-build/edi/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
