package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/cmd/cli/root"
	"github.com/spf13/cobra"
)

type summary struct {
	TotalAssets          int     `json:"total_assets"`
	TotalValue           float64 `json:"total_value"`
	ActiveAssets         int     `json:"active_assets"`
	MaintenanceDue       int     `json:"maintenance_due"`
	CategoryDistribution []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"category_distribution"`
	StatusDistribution []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	} `json:"status_distribution"`
	RecentActivities []struct {
		AssetID   int     `json:"asset_id"`
		Action    string  `json:"action"`
		Details   *string `json:"details"`
		Timestamp string  `json:"timestamp"`
	} `json:"recent_activities"`
}

// ==========================
// Init Dashboard
// ==========================
func InitDashboard(rootCmd *cobra.Command) {

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(root.APIBase() + "/api/dashboard/summary")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var s summary
			if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
				fmt.Println("invalid response:", err)
				return
			}

			fmt.Printf("Assets: %d (active %d, maintenance %d), total value %.2f\n",
				s.TotalAssets, s.ActiveAssets, s.MaintenanceDue, s.TotalValue)

			rows := make([][]interface{}, 0, len(s.CategoryDistribution))
			for _, c := range s.CategoryDistribution {
				rows = append(rows, []interface{}{c.Name, c.Count})
			}
			fmt.Println("\nBy category:")
			output.RenderTable([]string{"Category", "Assets"}, rows)

			rows = rows[:0]
			for _, st := range s.StatusDistribution {
				rows = append(rows, []interface{}{st.Status, st.Count})
			}
			fmt.Println("\nBy status:")
			output.RenderTable([]string{"Status", "Assets"}, rows)

			rows = rows[:0]
			for _, a := range s.RecentActivities {
				details := ""
				if a.Details != nil {
					details = *a.Details
				}
				rows = append(rows, []interface{}{a.Timestamp, a.AssetID, a.Action, details})
			}
			fmt.Println("\nRecent activity:")
			output.RenderTable([]string{"Timestamp", "Asset", "Action", "Details"}, rows)
		},
	}

	rootCmd.AddCommand(dashboardCmd)
}
