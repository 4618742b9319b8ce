package main

import (
	"os"

	"github.com/yuvrajpandey77/ShopifyMigration/cmd/shopmig/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
