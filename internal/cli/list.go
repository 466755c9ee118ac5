package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/registry"
)

var (
	listCategory string
	listSearch   string
	listSort     string
	listLimit    int
	listPage     int
	listJSON     bool
	listRegistry string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse community functions",
	Example: `  aerostack list
  aerostack list --category=payments --sort=recent
  aerostack list --search=stripe --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search name and description")
	listCmd.Flags().StringVar(&listSort, "sort", "stars", "Sort order: stars, recent or clones")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Results per page")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listRegistry, "registry", "", "Registry base URL")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}
	if listPage < 1 {
		return fmt.Errorf("--page must be at least 1")
	}

	client := registryClient(listRegistry)
	page, err := client.List(cmd.Context(), registry.ListOptions{
		Category: listCategory,
		Search:   listSearch,
		Sort:     listSort,
		Limit:    listLimit,
		Page:     listPage,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	heading(out, branding.DisplayName()+" Community Functions")
	var filters []string
	if listCategory != "" {
		filters = append(filters, "category: "+listCategory)
	}
	if listSearch != "" {
		filters = append(filters, "search: "+listSearch)
	}
	if len(filters) > 0 {
		muted.Fprintf(out, "  %s\n\n", strings.Join(filters, ", "))
	}

	if len(page.Functions) == 0 {
		fmt.Fprintln(out, "  No functions found.")
		fmt.Fprintln(out)
		return nil
	}

	for i := range page.Functions {
		printFunction(cmd, &page.Functions[i])
	}

	if page.Total > 0 {
		muted.Fprintf(out, "  Showing %d of %d functions (page %d)\n", len(page.Functions), page.Total, page.Page)
	}
	if page.HasMore() {
		fmt.Fprintf(out, "  Next page: %s\n", accent.Sprintf("%s list --page=%d", branding.CLIName(), page.Page+1))
	}
	fmt.Fprintf(out, "\n  Browse more at %s\n\n", accent.Sprint(branding.HubURL()))
	return nil
}

func printFunction(cmd *cobra.Command, fn *registry.Function) {
	out := cmd.OutOrStdout()
	ref := fn.Slug
	if owner := fn.Owner(); owner != "" {
		ref = owner + "/" + fn.Slug
	}

	line := "  " + bold.Sprint(fn.Name)
	if fn.Version != "" {
		line += " " + muted.Sprint("v"+fn.Version)
	}
	if fn.Category != "" {
		line += " " + accent.Sprintf("[%s]", fn.Category)
	}
	fmt.Fprintln(out, line)
	if fn.Description != "" {
		fmt.Fprintf(out, "    %s\n", truncate(fn.Description, 80))
	}
	stats := fmt.Sprintf("★ %d  ⎘ %d", fn.StarCount, fn.CloneCount)
	if len(fn.Tags) > 0 {
		stats += "  #" + strings.Join(fn.Tags, " #")
	}
	fmt.Fprintf(out, "    %s\n", muted.Sprint(stats))
	fmt.Fprintf(out, "    %s %s\n\n", muted.Sprint("install:"), accent.Sprintf("%s add %s", branding.CLIName(), ref))
}
