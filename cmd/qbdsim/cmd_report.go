package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/user/qbd_simulator_go/internal/report"
)

var (
	reportFile string
	reportSeed int64
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Execute a simulation definition and write a PDF capability report",
	RunE: func(cmd *cobra.Command, args []string) error {
		run, result, err := executeDefinition(cmd, reportFile, reportSeed)
		if err != nil {
			return err
		}

		log.Println("Generating histogram plot...")
		histogramPNG, err := report.CreateHistogramPlot(result, run.Response.Specification)
		if err != nil {
			log.Printf("Warning: histogram plot unavailable: %v", err)
			histogramPNG = nil
		}

		log.Printf("Generating PDF: %s...", reportOut)
		if err := report.BuildPDFReport(reportOut, *run, result, histogramPNG); err != nil {
			return fmt.Errorf("failed to generate PDF report: %w", err)
		}
		log.Printf("PDF report successfully generated: %s", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "simulation definition file (YAML or JSON)")
	reportCmd.Flags().Int64Var(&reportSeed, "seed", 0, "random seed for a reproducible run (time-seeded when omitted)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "report.pdf", "output PDF path")
	_ = reportCmd.MarkFlagRequired("file")
}
