package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/service"
)

var (
	quotePaper   string
	quoteColor   string
	quotePages   int
	quoteBinding string
)

// quoteCmd prices a print job offline with the same function the API uses.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Estimate the cost of a print job",
	Example: `  storefront quote --paper A4 --color bw --pages 10
  storefront quote --paper A3 --color color --pages 2 --binding spiral`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc := service.NewPrintOrderService(nil, nil, zerolog.Nop())
		cost, err := svc.EstimateCost(domain.PrintSpec{
			PaperSize: domain.NormalizePaperSize(quotePaper),
			ColorType: domain.ColorType(quoteColor),
			PageCount: quotePages,
			Binding:   domain.Binding(quoteBinding),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", cost)
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quotePaper, "paper", "A4", "Paper size (A4, A3)")
	quoteCmd.Flags().StringVar(&quoteColor, "color", "bw", "Color type (bw, color)")
	quoteCmd.Flags().IntVar(&quotePages, "pages", 1, "Page count")
	quoteCmd.Flags().StringVar(&quoteBinding, "binding", "none", "Binding (none, spiral, stapler)")
}
