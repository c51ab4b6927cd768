package categories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/cmd/cli/root"
	"github.com/spf13/cobra"
)

type category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// ==========================
// Init Categories
// ==========================
func InitCategories(rootCmd *cobra.Command) {

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	categoriesCmd.AddCommand(
		listCategoriesCmd(),
		createCategoryCmd(),
		deleteCategoryCmd(),
	)

	rootCmd.AddCommand(categoriesCmd)
}

// ==========================
// LIST
// ==========================
func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Run: func(cmd *cobra.Command, args []string) {

			resp, err := http.Get(root.APIBase() + "/api/categories")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var categories []category
			if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
				fmt.Println("invalid response:", err)
				return
			}

			rows := make([][]interface{}, 0, len(categories))
			for _, c := range categories {
				description := ""
				if c.Description != nil {
					description = *c.Description
				}
				rows = append(rows, []interface{}{c.ID, c.Name, description})
			}
			output.RenderTable([]string{"ID", "Name", "Description"}, rows)
		},
	}
}

// ==========================
// CREATE
// ==========================
func createCategoryCmd() *cobra.Command {

	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create category",
		Run: func(cmd *cobra.Command, args []string) {

			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}

			body, _ := json.Marshal(payload)
			resp, err := http.Post(root.APIBase()+"/api/categories", "application/json", bytes.NewReader(body))
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			var out any
			json.NewDecoder(resp.Body).Decode(&out)
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Category description")
	cmd.MarkFlagRequired("name")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete category",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			req, _ := http.NewRequest("DELETE", root.APIBase()+"/api/categories/"+args[0], nil)
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
			var out any
			json.NewDecoder(resp.Body).Decode(&out)
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}
}
