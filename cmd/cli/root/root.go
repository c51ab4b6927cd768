package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level command; subcommand packages attach themselves to it.
var RootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Asset inventory CLI",
	Long:  "Command line interface for interacting with the asset inventory API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command.
func GetRoot() *cobra.Command {
	return RootCmd
}

// APIBase returns the API base URL, overridable via INVENTORY_API_URL.
func APIBase() string {
	if v := os.Getenv("INVENTORY_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}
