// Package report renders aggregate estimates for human consumption:
// an XLSX workbook for distribution and a formatted console table.
package report

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/estimate"
)

var headers = []string{
	"Discipline", "Quantity", "Unit", "Rate", "Man-Hours", "Lower", "Upper", "Sources", "Status",
}

// WriteXLSX writes an aggregate estimate to an XLSX workbook at path.
// Rows follow the discipline configuration order; a totals row closes
// the sheet.
func WriteXLSX(path, projectName string, agg estimate.AggregateEstimate) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("WBS Estimate")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	title := sheet.AddRow()
	title.AddCell().Value = projectName

	hdr := sheet.AddRow()
	for _, h := range headers {
		hdr.AddCell().Value = h
	}

	for _, cfg := range benchmark.Disciplines() {
		res, ok := agg.Disciplines[cfg.ID]
		if !ok {
			continue
		}
		row := sheet.AddRow()
		row.AddCell().Value = cfg.DisplayName
		if res.Status != estimate.StatusOK || res.Estimate == nil {
			// Fill the numeric columns with blanks and state why.
			for range headers[1 : len(headers)-1] {
				row.AddCell()
			}
			row.AddCell().Value = string(res.Status)
			continue
		}
		est := res.Estimate
		row.AddCell().SetFloat(est.Quantity)
		row.AddCell().Value = cfg.Unit
		row.AddCell().SetFloat(est.Rate)
		row.AddCell().SetInt(est.ManHours)
		row.AddCell().SetInt(est.LowerBound)
		row.AddCell().SetInt(est.UpperBound)
		row.AddCell().SetInt(est.SourceProjectCount)
		row.AddCell().Value = string(res.Status)
	}

	total := sheet.AddRow()
	total.AddCell().Value = "Total"
	for i := 0; i < 3; i++ {
		total.AddCell()
	}
	total.AddCell().SetInt(agg.TotalManHours)
	total.AddCell().SetInt(agg.TotalLower)
	total.AddCell().SetInt(agg.TotalUpper)

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

// RenderTable writes a plain-text estimate table with locale-aware
// thousands separators.
func RenderTable(w io.Writer, agg estimate.AggregateEstimate) {
	p := message.NewPrinter(language.AmericanEnglish)

	fmt.Fprintf(w, "%-28s %14s %10s %10s %10s %8s\n",
		"Discipline", "Man-Hours", "Lower", "Upper", "Rate", "Sources")

	for _, cfg := range benchmark.Disciplines() {
		res, ok := agg.Disciplines[cfg.ID]
		if !ok {
			continue
		}
		if res.Status != estimate.StatusOK || res.Estimate == nil {
			fmt.Fprintf(w, "%-28s %14s\n", cfg.DisplayName, res.Status)
			continue
		}
		est := res.Estimate
		p.Fprintf(w, "%-28s %14d %10d %10d %10.4f %8d\n",
			cfg.DisplayName, est.ManHours, est.LowerBound, est.UpperBound, est.Rate, est.SourceProjectCount)
	}

	p.Fprintf(w, "%-28s %14d %10d %10d\n",
		"Total", agg.TotalManHours, agg.TotalLower, agg.TotalUpper)
}
