package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/cmd/cli/root"
	"github.com/spf13/cobra"
)

type asset struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	SerialNumber *string  `json:"serial_number"`
	CurrentValue *float64 `json:"current_value"`
	Category     *struct {
		Name string `json:"name"`
	} `json:"category"`
}

type historyEntry struct {
	ID        int     `json:"id"`
	Action    string  `json:"action"`
	Details   *string `json:"details"`
	Timestamp string  `json:"timestamp"`
}

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {

	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		createAssetCmd(),
		deleteAssetCmd(),
		assetHistoryCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {

	var status string
	var categoryID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Run: func(cmd *cobra.Command, args []string) {

			q := url.Values{}
			if status != "" {
				q.Set("status", status)
			}
			if categoryID != 0 {
				q.Set("category_id", fmt.Sprint(categoryID))
			}
			endpoint := root.APIBase() + "/api/assets"
			if len(q) > 0 {
				endpoint += "?" + q.Encode()
			}

			resp, err := http.Get(endpoint)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var assets []asset
			if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
				fmt.Println("invalid response:", err)
				return
			}

			rows := make([][]interface{}, 0, len(assets))
			for _, a := range assets {
				serial := ""
				if a.SerialNumber != nil {
					serial = *a.SerialNumber
				}
				value := ""
				if a.CurrentValue != nil {
					value = fmt.Sprintf("%.2f", *a.CurrentValue)
				}
				category := ""
				if a.Category != nil {
					category = a.Category.Name
				}
				rows = append(rows, []interface{}{a.ID, a.Name, a.Status, category, serial, value})
			}
			output.RenderTable([]string{"ID", "Name", "Status", "Category", "Serial", "Value"}, rows)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&categoryID, "category", 0, "Filter by category id")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createAssetCmd() *cobra.Command {

	var name string
	var description string
	var status string
	var categoryID int
	var serial string
	var location string
	var assignedTo string
	var purchaseDate string
	var purchasePrice float64
	var currentValue float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create asset",
		Run: func(cmd *cobra.Command, args []string) {

			payload := map[string]interface{}{
				"name":        name,
				"status":      status,
				"category_id": categoryID,
			}
			if description != "" {
				payload["description"] = description
			}
			if serial != "" {
				payload["serial_number"] = serial
			}
			if location != "" {
				payload["location"] = location
			}
			if assignedTo != "" {
				payload["assigned_to"] = assignedTo
			}
			if purchaseDate != "" {
				payload["purchase_date"] = purchaseDate
			}
			if cmd.Flags().Changed("price") {
				payload["purchase_price"] = purchasePrice
			}
			if cmd.Flags().Changed("value") {
				payload["current_value"] = currentValue
			}

			body, _ := json.Marshal(payload)
			resp, err := http.Post(root.APIBase()+"/api/assets", "application/json", bytes.NewReader(body))
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			printResponse(resp)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Asset name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Asset description")
	cmd.Flags().StringVar(&status, "status", "Active", "Asset status")
	cmd.Flags().IntVar(&categoryID, "category", 0, "Category id (required)")
	cmd.Flags().StringVar(&serial, "serial", "", "Serial number")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee")
	cmd.Flags().StringVar(&purchaseDate, "purchase-date", "", "Purchase date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&purchasePrice, "price", 0, "Purchase price")
	cmd.Flags().Float64Var(&currentValue, "value", 0, "Current value")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete asset",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			req, _ := http.NewRequest("DELETE", root.APIBase()+"/api/assets/"+args[0], nil)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNoContent {
				fmt.Println("deleted")
				return
			}
			printResponse(resp)
		},
	}
}

// ==========================
// HISTORY
// ==========================
func assetHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [id]",
		Short: "Show asset history, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(root.APIBase() + "/api/assets/" + args[0] + "/history")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				printResponse(resp)
				return
			}

			var entries []historyEntry
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				fmt.Println("invalid response:", err)
				return
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				details := ""
				if e.Details != nil {
					details = *e.Details
				}
				rows = append(rows, []interface{}{e.ID, e.Action, details, e.Timestamp})
			}
			output.RenderTable([]string{"ID", "Action", "Details", "Timestamp"}, rows)
		},
	}
}

// printResponse pretty-prints whatever JSON the API returned.
func printResponse(resp *http.Response) {
	var out any
	json.NewDecoder(resp.Body).Decode(&out)
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
