package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and flowing-content state for PDF
// generation.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - (2 * pdfMargin),
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellRed"] = func() { // for out-of-specification figures
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable lays out a bordered table; cellStyle picks the style per cell
// and may be nil for all-"tableCell".
func (s *pdfStyler) writeTable(headers []string, rows [][]string, colWidthsRel []float64, cellStyle func(row, col int) string) {
	colWidthsAbs := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidthsAbs[i] = rel * pdfContentWidth
	}

	s.checkAddPage(s.lineHeight * float64(len(rows)+1))
	sY := s.currentY
	sX := pdfMargin
	s.applyStyle("tableHeader")
	for i, header := range headers {
		s.pdf.SetXY(sX, sY)
		s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		sX += colWidthsAbs[i]
	}
	sY += s.lineHeight
	s.currentY = sY

	for r, row := range rows {
		s.checkAddPage(s.lineHeight)
		sY = s.currentY
		sX = pdfMargin
		for c, cell := range row {
			style := "tableCell"
			if cellStyle != nil {
				style = cellStyle(r, c)
			}
			s.applyStyle(style)
			s.pdf.SetXY(sX, sY)
			s.pdf.CellFormat(colWidthsAbs[c], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			sX += colWidthsAbs[c]
		}
		s.currentY = sY + s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)
	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// BuildPDFReport writes a capability summary PDF for one simulation run:
// run context, response statistics, capability figures against the
// specification window, realized parameter statistics, and the histogram
// chart produced by CreateHistogramPlot.
func BuildPDFReport(filepath string, run simulation.SimulationRun, result *simulation.SimulationResult, histogramPNG []byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	spec := run.Response.Specification

	styler.writeParagraph("Quality by Design Simulation Report", "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Response: %s    Completed: %s    Run ID: %s",
		labelWithUnit(result.ResponseName, result.Unit), result.CompletedAt, result.ID), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Iterations: %d    Specification: %.3f to %.3f (target %.3f)",
		result.Iterations, spec.Lower, spec.Upper, spec.Target), "normal", "L")
	styler.addSpacer(4)

	st := result.Statistics
	styler.writeParagraph("Response Statistics", "h2", "L")
	styler.writeTable(
		[]string{"Mean", "Median", "Std Dev", "Min", "Max", "CI Lower", "CI Upper"},
		[][]string{{
			fmt.Sprintf("%.4f", st.Mean),
			fmt.Sprintf("%.4f", st.Median),
			fmt.Sprintf("%.4f", st.StdDev),
			fmt.Sprintf("%.4f", st.Min),
			fmt.Sprintf("%.4f", st.Max),
			fmt.Sprintf("%.4f", st.CILower),
			fmt.Sprintf("%.4f", st.CIUpper),
		}},
		[]float64{1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7},
		nil,
	)
	styler.addSpacer(4)

	capability := result.Capability
	styler.writeParagraph("Process Capability", "h2", "L")
	styler.writeTable(
		[]string{"Cpk", "Within Spec", "Below Lower", "Above Upper"},
		[][]string{{
			formatCpk(capability.Cpk),
			fmt.Sprintf("%.2f%%", capability.WithinSpec*100),
			fmt.Sprintf("%.2f%%", capability.BelowLower*100),
			fmt.Sprintf("%.2f%%", capability.AboveUpper*100),
		}},
		[]float64{0.25, 0.25, 0.25, 0.25},
		func(row, col int) string {
			if col >= 2 && (capability.BelowLower > 0 || capability.AboveUpper > 0) {
				return "tableCellRed"
			}
			return "tableCell"
		},
	)
	styler.addSpacer(4)

	styler.writeParagraph("Sampled Parameters", "h2", "L")
	paramRows := make([][]string, 0, len(result.SampledParameters))
	requested := make(map[string]simulation.Parameter, len(run.Parameters))
	for _, p := range run.Parameters {
		requested[p.Name] = p
	}
	for _, sp := range result.SampledParameters {
		p := requested[sp.Name]
		paramRows = append(paramRows, []string{
			sp.Name,
			p.Distribution,
			fmt.Sprintf("%.4f", sp.Mean),
			fmt.Sprintf("%.4f", sp.StdDev),
			fmt.Sprintf("%.4f", sp.Min),
			fmt.Sprintf("%.4f", sp.Max),
		})
	}
	styler.writeTable(
		[]string{"Parameter", "Distribution", "Realized Mean", "Realized Std Dev", "Realized Min", "Realized Max"},
		paramRows,
		[]float64{0.25, 0.15, 0.15, 0.15, 0.15, 0.15},
		nil,
	)

	if len(histogramPNG) > 0 {
		styler.pdf.AddPage()
		styler.currentY = styler.contentTopY
		styler.writeParagraph("Response Distribution", "h2", "L")
		imgWidth := pdfContentWidth * 0.9
		imgHeight := imgWidth * (4.0 / 8.0)
		styler.addImage(histogramPNG, "histogram", imgWidth, imgHeight,
			fmt.Sprintf("Histogram of %s over %d iterations", result.ResponseName, result.Iterations))
	}

	return pdf.OutputFileAndClose(filepath)
}

// formatCpk keeps the zero-variance sentinel readable in print.
func formatCpk(v float64) string {
	if v >= math.MaxFloat64 {
		return "> 999"
	}
	if v <= -math.MaxFloat64 {
		return "< -999"
	}
	return fmt.Sprintf("%.3f", v)
}
