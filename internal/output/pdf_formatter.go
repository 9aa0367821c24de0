package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// PDFFormatter renders a printable report: one page per scenario with a
// summary, a balance line chart and the yearly table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	chartHeight  = 70.0
)

type pdfReport struct {
	pdf *fpdf.Fpdf
}

func (p PDFFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", "")}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Pension Projection", false)

	for _, sc := range report.Scenarios {
		r.addScenarioPage(report, sc)
	}
	if len(report.Scenarios) == 0 {
		r.pdf.AddPage()
		r.drawSectionHeader("Pension Projection")
	}
	r.addAssumptions(report)

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addScenarioPage(report *domain.ProjectionReport, sc domain.ScenarioProjection) {
	res := sc.Result
	r.pdf.AddPage()
	r.drawSectionHeader(sc.Name)

	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 5, "Generated: "+report.GeneratedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
	r.pdf.Ln(3)

	widths := []float64{contentWidth / 2, contentWidth / 2}
	r.drawTableHeader([]string{"Metric", "Value"}, widths)
	rows := [][]string{
		{"Age", strconv.Itoa(res.StartAge)},
		{"Salary", FormatCurrency(res.Input.Salary)},
		{"Contribution Rate", FormatPercentage(res.Input.ContributionRate)},
		{"Investment Return", FormatPercentage(res.Input.InvestmentReturn)},
		{"Expense Ratio", FormatPercentage(res.Input.ExpenseRatio)},
		{"Current Balance", FormatCurrency(res.Input.CurrentBalance)},
		{"Years to Retirement", strconv.Itoa(res.YearsToRetirement())},
		{"Total Contributions", FormatCurrency(res.TotalContributions)},
		{"Total Growth", FormatCurrency(res.TotalGrowth)},
	}
	for _, row := range rows {
		r.drawTableRow(row, widths, false)
	}
	r.drawTableRow([]string{"Projected Balance", FormatCurrency(res.FinalBalance)}, widths, true)
	r.drawTableRow([]string{"Estimated Income", FormatCurrency(res.EstimatedAnnualIncome)}, widths, true)
	r.pdf.Ln(6)

	if len(res.YearlyBalances) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(120, 120, 120)
		r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Already at retirement age %d: no projection years.", res.RetirementAge), "", 1, "L", false, 0, "")
		return
	}

	r.drawBalanceChart(res)

	widths = []float64{20, 20, 35, 35, 35, 35}
	r.drawTableHeader([]string{"Year", "Age", "Calendar Year", "Contribution", "Growth", "Balance"}, widths)
	for _, yb := range res.YearlyBalances {
		r.drawTableRow([]string{
			strconv.Itoa(yb.Year),
			strconv.Itoa(yb.Age),
			strconv.Itoa(yb.CalendarYear),
			FormatCurrencyCents(yb.Contribution),
			FormatCurrencyCents(yb.Growth),
			FormatCurrencyCents(yb.Balance),
		}, widths, false)
	}
}

// drawBalanceChart plots the yearly balances as a polyline with labelled axes.
func (r *pdfReport) drawBalanceChart(res domain.ProjectionResult) {
	balances := res.Balances()
	values := make([]float64, len(balances))
	lo, hi := 0.0, 0.0
	for i, b := range balances {
		v := b.InexactFloat64()
		values[i] = v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, "Projected Pension Balance", "", 1, "C", false, 0, "")

	left := marginLeft + 22
	width := contentWidth - 24
	top := r.pdf.GetY() + 2
	bottom := top + chartHeight

	r.pdf.SetDrawColor(150, 150, 150)
	r.pdf.SetLineWidth(0.2)
	r.pdf.Line(left, top, left, bottom)
	r.pdf.Line(left, bottom, left+width, bottom)

	r.pdf.SetFont("Arial", "", 7)
	r.pdf.SetTextColor(80, 80, 80)
	for _, v := range []float64{lo, lo + span/2, hi} {
		y := bottom - (v-lo)/span*chartHeight
		r.pdf.SetXY(marginLeft, y-2)
		r.pdf.CellFormat(20, 4, FormatCurrency(decimal.NewFromFloat(v)), "", 0, "R", false, 0, "")
	}

	step := width
	if len(values) > 1 {
		step = width / float64(len(values)-1)
	}
	point := func(i int) (float64, float64) {
		x := left
		if len(values) > 1 {
			x = left + float64(i)*step
		}
		return x, bottom - (values[i]-lo)/span*chartHeight
	}

	r.pdf.SetDrawColor(0, 0, 255)
	r.pdf.SetLineWidth(0.5)
	for i := 1; i < len(values); i++ {
		x0, y0 := point(i - 1)
		x1, y1 := point(i)
		r.pdf.Line(x0, y0, x1, y1)
	}
	r.pdf.SetFillColor(0, 0, 255)
	for i := range values {
		x, y := point(i)
		r.pdf.Circle(x, y, 0.6, "F")
	}

	r.pdf.SetXY(left, bottom+1)
	r.pdf.CellFormat(10, 4, "1", "", 0, "L", false, 0, "")
	r.pdf.SetXY(left+width-10, bottom+1)
	r.pdf.CellFormat(10, 4, strconv.Itoa(len(values)), "", 0, "R", false, 0, "")
	r.pdf.SetXY(left, bottom+5)
	r.pdf.SetFont("Arial", "", 8)
	r.pdf.CellFormat(width, 4, "Years", "", 1, "C", false, 0, "")
	r.pdf.SetXY(marginLeft, top-6)
	r.pdf.CellFormat(20, 4, "Balance ($)", "", 1, "R", false, 0, "")

	r.pdf.SetLineWidth(0.2)
	r.pdf.SetY(bottom + 12)
}

func (r *pdfReport) addAssumptions(report *domain.ProjectionReport) {
	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, line := range GenerateAssumptions(report.Assumptions) {
		r.pdf.MultiCell(contentWidth, 5, "- "+line, "", "L", false)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
