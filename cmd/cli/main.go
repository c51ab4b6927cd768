package main

import (
	"fmt"
	"os"

	"github.com/crucial707/asset-inventory/cmd/cli/assets"
	"github.com/crucial707/asset-inventory/cmd/cli/categories"
	"github.com/crucial707/asset-inventory/cmd/cli/dashboard"
	"github.com/crucial707/asset-inventory/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	assets.InitAssets(rootCmd)
	categories.InitCategories(rootCmd)
	dashboard.InitDashboard(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
