package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quadfall/internal/games/quadfall"
	"github.com/vovakirdan/quadfall/internal/registry"
)

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List available shape catalogs",
	Long: `Shows the registered shape catalogs. Custom shapes can also be
defined in the config file under catalog.shapes.`,
	Args: cobra.NoArgs,
	Run:  runCatalogs,
}

func runCatalogs(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	catalogs := registry.List()

	if len(catalogs) == 0 {
		fmt.Fprintln(out, "No catalogs available.")
		return
	}

	fmt.Fprintln(out, "Available catalogs:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, c := range catalogs {
		if len(c.Name) > maxNameLen {
			maxNameLen = len(c.Name)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "----", "-----")

	for _, c := range catalogs {
		marker := ""
		if c.Name == quadfall.DefaultCatalog {
			marker = " (default)"
		}
		fmt.Fprintf(out, "  %-*s  %s%s\n", maxNameLen, c.Name, c.Title, marker)
		fmt.Fprintf(out, "  %-*s  shapes: %s\n", maxNameLen, "", strings.Join(c.Shapes, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'quadfall play --catalog <name>' to use one.")
}
