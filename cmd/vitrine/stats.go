package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"vitrine/internal/driver"
)

// printStatsTable prints the per-file summary after a directory render.
func printStatsTable(w io.Writer, res *driver.DirResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "HTML Bytes", "Cache", "Diags"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	totalBytes := 0
	totalDiags := 0
	for _, f := range res.Files {
		cache := "miss"
		if f.FromCache {
			cache = "hit"
		}
		diags := 0
		if f.Bag != nil {
			diags = f.Bag.Len()
		}
		totalBytes += len(f.HTML)
		totalDiags += diags
		table.Append([]string{
			f.Display,
			fmt.Sprintf("%d", len(f.HTML)),
			cache,
			fmt.Sprintf("%d", diags),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(res.Files)),
		fmt.Sprintf("%d", totalBytes),
		"",
		fmt.Sprintf("%d", totalDiags),
	})

	table.Render()
}
