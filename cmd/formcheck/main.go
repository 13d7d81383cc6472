package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formcheck: %v\n", err)
		os.Exit(2)
	}

	cmd := newRootCommand(cfg)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidData) {
			fmt.Fprintf(os.Stderr, "formcheck: %v\n", err)
		}
		os.Exit(1)
	}
}
