package main

import (
	"os"

	"github.com/lshdainty/porest-hr-front-sub002/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
