package main

import (
	"fmt"

	"numfacts/internal/picker"

	"github.com/spf13/cobra"
)

// categoriesCmd lists the fact categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the fact categories",
	Args:  cobra.NoArgs,
	RunE:  listCategories,
}

func listCategories(cmd *cobra.Command, args []string) error {
	def := picker.New().Selected
	for _, c := range picker.DefaultOptions() {
		marker := " "
		if c == def {
			marker = "*"
		}
		fmt.Printf("%s %-7s %s\n", marker, c, picker.Title(c))
	}
	return nil
}
