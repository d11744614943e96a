package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"roi-engine/internal/guard"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/service/scoring"
)

const (
	summarySheet    = "Summary"
	processesSheet  = "Processes"
	prioritySheet   = "Prioritization"
	cashFlowSheet   = "Cash Flow"
	moneyNumFmt     = 3 // #,##0
	percentNumFmt   = 2 // 0.00
	defaultColWidth = 18
)

type ResultProvider interface {
	Prioritize(ctx context.Context, orgID string) (roi.ROIResults, []scoring.Prioritization, error)
}

type ReportService struct {
	provider ResultProvider
}

func NewReportService(provider ResultProvider) *ReportService {
	return &ReportService{provider: provider}
}

// GenerateExcel builds the workbook for an organization's current portfolio.
// A blocked calculation yields guard.ErrBlocked, never an empty workbook.
func (s *ReportService) GenerateExcel(ctx context.Context, orgID string) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	res, prio, err := s.provider.Prioritize(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch results: %w", op, err)
	}
	if res.Blocked {
		return nil, fmt.Errorf("%s: %w: %s", op, guard.ErrBlocked, strings.Join(res.Blockers, "; "))
	}

	b, err := Build(res, prio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Money rounds a monetary value up to the next whole unit for display.
func Money(v float64) float64 {
	return math.Ceil(v)
}

// Build renders results into an xlsx workbook.
func Build(res roi.ROIResults, prio []scoring.Prioritization) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{processesSheet, prioritySheet, cashFlowSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	writeSummary(f, st, res)
	writeProcesses(f, st, res.ProcessResults)
	writePrioritization(f, st, prio)
	writeCashFlow(f, st, res.Cashflow)

	for _, name := range []string{summarySheet, processesSheet, prioritySheet, cashFlowSheet} {
		f.SetColWidth(name, "A", "M", defaultColWidth)
		f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styles struct {
	header  int
	money   int
	percent int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return st, err
	}
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt}); err != nil {
		return st, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: percentNumFmt}); err != nil {
		return st, err
	}
	return st, nil
}

func writeHeader(f *excelize.File, st styles, sheet string, headers []string) {
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), st.header)
}

func writeSummary(f *excelize.File, st styles, res roi.ROIResults) {
	writeHeader(f, st, summarySheet, []string{"Metric", "Value"})

	rows := []struct {
		label string
		value float64
		style int
	}{
		{"Net annual savings", Money(res.NetAnnualSavings), st.money},
		{"Gross annual savings", Money(res.GrossAnnualSavings), st.money},
		{"Hard dollar savings", Money(res.HardDollarSavings), st.money},
		{"Soft dollar savings", Money(res.SoftDollarSavings), st.money},
		{"Total implementation cost", Money(res.TotalImplementationCost), st.money},
		{"Monthly software cost", Money(res.MonthlySoftwareCost), st.money},
		{"NPV", Money(res.NPV), st.money},
		{"IRR %", res.IRR * 100, st.percent},
		{"ROI %", res.ROIPercentage, st.percent},
		{"Payback (months)", res.PaybackPeriodMonths, st.percent},
		{"Annual hours saved", res.AnnualTimeSavings, st.percent},
		{"FTEs freed", res.FTEsFreed, st.percent},
		{"Sensitivity: conservative ROI %", res.Sensitivity.Conservative, st.percent},
		{"Sensitivity: likely ROI %", res.Sensitivity.Likely, st.percent},
		{"Sensitivity: optimistic ROI %", res.Sensitivity.Optimistic, st.percent},
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(summarySheet, cellName(1, row), r.label)
		f.SetCellValue(summarySheet, cellName(2, row), r.value)
		f.SetCellStyle(summarySheet, cellName(2, row), cellName(2, row), r.style)
	}

	row := len(rows) + 3
	for _, y := range res.EBITDAByYear {
		f.SetCellValue(summarySheet, cellName(1, row), fmt.Sprintf("EBITDA year %d", y.Year))
		f.SetCellValue(summarySheet, cellName(2, row), Money(y.EBITDA))
		f.SetCellStyle(summarySheet, cellName(2, row), cellName(2, row), st.money)
		row++
	}
}

func writeProcesses(f *excelize.File, st styles, results []roi.ProcessROIResult) {
	writeHeader(f, st, processesSheet, []string{
		"Process", "Group", "Selected", "Net annual savings", "Hard savings", "Soft savings",
		"Implementation cost", "Payback (months)", "Hours saved / month", "FTEs freed",
	})

	for i, r := range results {
		row := i + 2
		f.SetCellValue(processesSheet, cellName(1, row), r.Name)
		f.SetCellValue(processesSheet, cellName(2, row), r.Group)
		f.SetCellValue(processesSheet, cellName(3, row), r.Selected)
		f.SetCellValue(processesSheet, cellName(4, row), Money(r.NetAnnualSavings))
		f.SetCellValue(processesSheet, cellName(5, row), Money(r.HardDollarSavings))
		f.SetCellValue(processesSheet, cellName(6, row), Money(r.SoftDollarSavings))
		f.SetCellValue(processesSheet, cellName(7, row), Money(r.TotalImplementationCost))
		f.SetCellValue(processesSheet, cellName(8, row), r.PaybackPeriodMonths)
		f.SetCellValue(processesSheet, cellName(9, row), r.MonthlyTimeSaved)
		f.SetCellValue(processesSheet, cellName(10, row), r.FTEsFreed)
		f.SetCellStyle(processesSheet, cellName(4, row), cellName(7, row), st.money)
		f.SetCellStyle(processesSheet, cellName(8, row), cellName(10, row), st.percent)
	}
}

func writePrioritization(f *excelize.File, st styles, prio []scoring.Prioritization) {
	writeHeader(f, st, prioritySheet, []string{
		"Process", "Complexity", "Risk", "Risk-adjusted NPV", "Risk-adjusted ROI", "Effort", "CFO score",
		"Quadrant", "Matrix quadrant",
	})

	for i, p := range prio {
		row := i + 2
		f.SetCellValue(prioritySheet, cellName(1, row), p.Name)
		f.SetCellValue(prioritySheet, cellName(2, row), p.Complexity.Index)
		f.SetCellValue(prioritySheet, cellName(3, row), string(p.Complexity.Category))
		f.SetCellValue(prioritySheet, cellName(4, row), Money(p.Components.RiskAdjustedNPV))
		f.SetCellValue(prioritySheet, cellName(5, row), p.Components.RiskAdjustedROI)
		f.SetCellValue(prioritySheet, cellName(6, row), p.Components.ImplementationEffort)
		f.SetCellValue(prioritySheet, cellName(7, row), p.Components.CFOScore)
		f.SetCellValue(prioritySheet, cellName(8, row), string(p.Components.Quadrant))
		f.SetCellValue(prioritySheet, cellName(9, row), string(p.MatrixQuadrant))
		f.SetCellStyle(prioritySheet, cellName(4, row), cellName(4, row), st.money)
		f.SetCellStyle(prioritySheet, cellName(5, row), cellName(7, row), st.percent)
	}
}

func writeCashFlow(f *excelize.File, st styles, series []roi.CashflowData) {
	writeHeader(f, st, cashFlowSheet, []string{"Month", "Cumulative savings", "Cumulative cost", "Net cash flow"})

	for i, c := range series {
		row := i + 2
		f.SetCellValue(cashFlowSheet, cellName(1, row), c.Month)
		f.SetCellValue(cashFlowSheet, cellName(2, row), Money(c.CumulativeSavings))
		f.SetCellValue(cashFlowSheet, cellName(3, row), Money(c.CumulativeCost))
		f.SetCellValue(cashFlowSheet, cellName(4, row), Money(c.NetCashflow))
		f.SetCellStyle(cashFlowSheet, cellName(2, row), cellName(4, row), st.money)
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
