package main

import (
	"os"

	"github.com/solfront/solana-cluster-provider/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
