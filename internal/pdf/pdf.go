// Package pdf renders an AuditReport into a paginated PDF document.
// Rendering is a pure function of the report: it performs no validation
// and treats all text as opaque strings.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// Page geometry in points (1 pt = 1/72 inch), US Letter.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginX      = 48.0
	contentWidth = pageWidth - 2*marginX

	// pageTop is where the cursor resets after a page break; pageBottom
	// is the hard limit content may not cross.
	pageTop    = 64.0
	pageBottom = pageHeight - 56.0

	lineHeight = 13.0
)

// charsPerLine approximates how many characters of 9pt body text fit
// into contentWidth. It is a deliberate heuristic, not a glyph
// measurement; swapping in precise text metrics would not change the
// shape of the page-break algorithm.
const charsPerLine = 96

// Card metrics.
const (
	cardPadding  = 12.0
	cardGap      = 14.0
	snippetInset = 2 * lineHeight
)

type rgb struct{ r, g, b int }

var (
	colorBackground = rgb{15, 22, 33}
	colorCard       = rgb{26, 34, 49}
	colorAccent     = rgb{0, 136, 204}
	colorText       = rgb{226, 232, 240}
	colorSubtext    = rgb{148, 163, 184}
	colorMuted      = rgb{127, 140, 141}
)

var severityColors = map[string]rgb{
	models.SeverityCritical: {231, 76, 60},
	models.SeverityHigh:     {230, 126, 34},
	models.SeverityMedium:   {241, 196, 15},
	models.SeverityLow:      {46, 204, 113},
	models.SeverityInfo:     {52, 152, 219},
}

var riskColors = map[string]rgb{
	models.RiskCritical: {231, 76, 60},
	models.RiskHigh:     {230, 126, 34},
	models.RiskMedium:   {241, 196, 15},
	models.RiskLow:      {46, 204, 113},
	models.RiskClean:    {46, 204, 113},
}

// severityColor maps a severity to its display color. Unknown values get
// a muted color instead of failing the render.
func severityColor(severity string) rgb {
	if c, ok := severityColors[severity]; ok {
		return c
	}
	return colorMuted
}

func riskColor(risk string) rgb {
	if c, ok := riskColors[risk]; ok {
		return c
	}
	return colorMuted
}

// scoreColor keys off the same thresholds as models.RiskFromScore.
func scoreColor(score int) rgb {
	return riskColor(models.RiskFromScore(score))
}

// Render produces the paginated document for a single report: a cover
// page, findings pages, and a closing analysis page.
func Render(report *models.AuditReport) ([]byte, error) {
	d := newDoc()

	d.drawCover(report)
	d.drawFindings(report.Findings)
	d.drawAnalysis(report)

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWorst renders the lowest-scoring report of a batch on its own.
// Merging multiple reports into one document is a documented limitation.
func RenderWorst(batch *models.BatchReport) ([]byte, error) {
	worst := batch.WorstReport()
	if worst == nil {
		return nil, fmt.Errorf("batch holds no reports to render")
	}
	return Render(worst)
}

// doc tracks the vertical cursor across pages.
type doc struct {
	pdf *fpdf.Fpdf
	y   float64
}

func newDoc() *doc {
	p := fpdf.New("P", "pt", "Letter", "")
	p.SetAutoPageBreak(false, 0)
	return &doc{pdf: p}
}

// newPage starts a page and repaints the background and accent bar.
func (d *doc) newPage() {
	d.pdf.AddPage()
	d.fillRect(0, 0, pageWidth, pageHeight, colorBackground)
	d.fillRect(0, 0, pageWidth, 4, colorAccent)
	d.y = pageTop
}

// ensureRoom emits a page break if height would push the cursor past the
// bottom margin. The decision is made before drawing so a block is never
// split across pages.
func (d *doc) ensureRoom(height float64) {
	if d.y+height > pageBottom {
		d.newPage()
	}
}

func (d *doc) fillRect(x, y, w, h float64, c rgb) {
	d.pdf.SetFillColor(c.r, c.g, c.b)
	d.pdf.Rect(x, y, w, h, "F")
}

func (d *doc) text(x, y float64, size float64, style string, c rgb, s string) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.Text(x, y, s)
}

// --- Cover page ---

// Fixed cover positions; this page never paginates.
const (
	coverTitleY    = 130.0
	coverNameY     = 168.0
	coverGridY     = 236.0
	coverBadgeY    = 330.0
	coverStripY    = 420.0
	coverSummaryY  = 508.0
	coverGridRowH  = 26.0
	coverBadgeH    = 40.0
	coverStripH    = 54.0
	summaryMaxRows = 14
)

func (d *doc) drawCover(report *models.AuditReport) {
	d.newPage()

	d.text(marginX, coverTitleY, 26, "B", colorText, "TON Security Audit")
	d.text(marginX, coverNameY, 16, "", colorAccent, report.ContractName)

	// 2-column metadata grid.
	colX := [2]float64{marginX, marginX + contentWidth/2}
	cells := []struct {
		label string
		value string
	}{
		{"AUDIT DATE", report.AuditedAt.Format("2006-01-02 15:04 MST")},
		{"LANGUAGE", strings.ToUpper(string(report.Language))},
		{"LINES OF CODE", fmt.Sprintf("%d", report.LinesOfCode)},
		{"ANALYSIS", "AI Security Analysis"},
	}
	for i, cell := range cells {
		x := colX[i%2]
		y := coverGridY + float64(i/2)*2*coverGridRowH
		d.text(x, y, 8, "", colorSubtext, cell.label)
		d.text(x, y+coverGridRowH/1.6, 11, "B", colorText, cell.value)
	}

	// Risk and score badges.
	riskC := riskColor(report.OverallRisk)
	d.pdf.SetFillColor(riskC.r, riskC.g, riskC.b)
	d.pdf.RoundedRect(marginX, coverBadgeY, 150, coverBadgeH, 6, "1234", "F")
	d.text(marginX+14, coverBadgeY+25, 12, "B", colorBackground,
		strings.ToUpper(report.OverallRisk)+" RISK")

	scoreC := scoreColor(report.Score)
	d.pdf.SetFillColor(scoreC.r, scoreC.g, scoreC.b)
	d.pdf.RoundedRect(marginX+170, coverBadgeY, 150, coverBadgeH, 6, "1234", "F")
	d.text(marginX+184, coverBadgeY+25, 12, "B", colorBackground,
		fmt.Sprintf("SCORE %d/100", report.Score))

	// Severity count strip: one cell per known severity.
	counts := report.SeverityCounts()
	severities := models.Severities()
	cellW := contentWidth / float64(len(severities))
	for i, sev := range severities {
		x := marginX + float64(i)*cellW
		c := severityColor(sev)
		d.fillRect(x, coverStripY, cellW-6, coverStripH, colorCard)
		d.fillRect(x, coverStripY, cellW-6, 3, c)
		d.text(x+10, coverStripY+26, 16, "B", c, fmt.Sprintf("%d", counts[sev]))
		d.text(x+10, coverStripY+42, 7, "", colorSubtext, strings.ToUpper(sev))
	}

	// Executive summary, clamped so the cover never spills over.
	d.text(marginX, coverSummaryY, 9, "B", colorAccent, "EXECUTIVE SUMMARY")
	lines := wrapText(report.Summary, charsPerLine)
	if len(lines) > summaryMaxRows {
		lines = lines[:summaryMaxRows]
	}
	y := coverSummaryY + lineHeight + 4
	for _, line := range lines {
		d.text(marginX, y, 9, "", colorText, line)
		y += lineHeight
	}
}

// --- Findings pages ---

func (d *doc) drawFindings(findings []models.Finding) {
	d.newPage()
	d.text(marginX, d.y, 14, "B", colorText, "Findings")
	d.y += 2 * lineHeight

	if len(findings) == 0 {
		d.text(marginX, d.y, 10, "", colorSubtext, "No findings reported.")
		d.y += lineHeight
		return
	}

	for i := range findings {
		f := &findings[i]
		height := estimateCardHeight(f)
		d.ensureRoom(height)
		d.drawFindingCard(f, height)
	}
}

// estimateCardHeight computes a finding card's vertical extent before
// anything is drawn, so the page-break decision is atomic per card.
func estimateCardHeight(f *models.Finding) float64 {
	h := 2 * cardPadding
	h += lineHeight // id + severity pill
	h += lineHeight // category + title
	if f.Location != "" {
		h += lineHeight
	}
	h += lineHeight + float64(estimateLines(f.Description))*lineHeight
	if f.CodeSnippet != "" {
		h += snippetInset + 6
	}
	h += lineHeight + float64(estimateLines(f.Recommendation))*lineHeight
	return h
}

// estimateLines applies the characters-per-line heuristic to a text
// block's length.
func estimateLines(s string) int {
	if s == "" {
		return 1
	}
	return (len(s) + charsPerLine - 1) / charsPerLine
}

func (d *doc) drawFindingCard(f *models.Finding, height float64) {
	top := d.y
	d.fillRect(marginX, top, contentWidth, height-cardGap, colorCard)

	sevC := severityColor(f.Severity)
	d.fillRect(marginX, top, 3, height-cardGap, sevC)

	x := marginX + cardPadding
	y := top + cardPadding + 8

	// ID and severity pill.
	d.text(x, y, 10, "B", colorText, f.ID)
	pillLabel := strings.ToUpper(f.Severity)
	pillW := float64(len(pillLabel))*5.5 + 14
	d.pdf.SetFillColor(sevC.r, sevC.g, sevC.b)
	d.pdf.RoundedRect(x+56, y-9, pillW, 12, 6, "1234", "F")
	d.text(x+63, y, 7, "B", colorBackground, pillLabel)
	y += lineHeight

	// Category and title.
	d.text(x, y, 9, "B", colorText, f.Category+": "+f.Title)
	y += lineHeight

	if f.Location != "" {
		d.text(x, y, 8, "", colorSubtext, "Location: "+f.Location)
		y += lineHeight
	}

	d.text(x, y, 7, "B", colorAccent, "DESCRIPTION")
	y += lineHeight
	y = d.drawWrapped(x, y, f.Description, colorText)

	if f.CodeSnippet != "" {
		d.fillRect(x, y-9, contentWidth-2*cardPadding, snippetInset-4, colorBackground)
		d.pdf.SetFont("Courier", "", 8)
		d.pdf.SetTextColor(colorSubtext.r, colorSubtext.g, colorSubtext.b)
		d.pdf.Text(x+6, y+3, f.CodeSnippet)
		y += snippetInset + 6
	}

	d.text(x, y, 7, "B", colorAccent, "RECOMMENDATION")
	y += lineHeight
	d.drawWrapped(x, y, f.Recommendation, colorText)

	d.y = top + height
}

// drawWrapped draws a word-wrapped text block and returns the next
// baseline. Wrapping uses the same charsPerLine constant as the height
// estimate so the two stay in step.
func (d *doc) drawWrapped(x, y float64, s string, c rgb) float64 {
	for _, line := range wrapText(s, charsPerLine) {
		d.text(x, y, 9, "", c, line)
		y += lineHeight
	}
	return y
}

// --- Analysis page ---

func (d *doc) drawAnalysis(report *models.AuditReport) {
	d.newPage()
	d.text(marginX, d.y, 14, "B", colorText, "Analysis")
	d.y += 2 * lineHeight

	d.drawAnalysisCard("GAS OPTIMIZATION ANALYSIS", report.GasAnalysis)
	d.drawAnalysisCard("ARCHITECTURE NOTES", report.ArchitectureNotes)

	// Footer appears once, on this final page only.
	d.text(marginX, pageHeight-30, 7, "", colorSubtext,
		"Generated by TON Audit AI. Findings are AI-assisted and require manual verification.")
}

func (d *doc) drawAnalysisCard(label, body string) {
	if body == "" {
		body = "Not assessed."
	}
	height := 2*cardPadding + lineHeight + float64(estimateLines(body))*lineHeight + cardGap
	d.ensureRoom(height)

	top := d.y
	d.fillRect(marginX, top, contentWidth, height-cardGap, colorCard)

	x := marginX + cardPadding
	y := top + cardPadding + 8
	d.text(x, y, 8, "B", colorAccent, label)
	y += lineHeight
	d.drawWrapped(x, y, body, colorText)

	d.y = top + height
}

// wrapText greedily word-wraps s to at most width characters per line.
// Words longer than a full line are hard-split.
func wrapText(s string, width int) []string {
	if s == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:width])
				word = word[width:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
