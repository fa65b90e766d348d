package http

import (
	"time"

	"finance/internal/core"
	"finance/internal/report"
)

// ReportPayload is the JSON form of a report served by /api/report.
type ReportPayload struct {
	Params       ParamsPayload        `json:"params"`
	Totals       TotalsPayload        `json:"totals"`
	Transactions []TransactionPayload `json:"transactions"`
	Categories   CategoryPayload      `json:"categories"`
	Monthly      MonthlyPayload       `json:"monthly"`
}

type ParamsPayload struct {
	DateFrom  string `json:"from"`
	DateTo    string `json:"to"`
	Category  string `json:"q"`
	YearMonth string `json:"month"`
}

type TotalsPayload struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// TransactionPayload carries the amount as stored, so legacy rows that do
// not parse stay visible.
type TransactionPayload struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
}

type CategoryPayload struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type MonthlyPayload struct {
	Month   string    `json:"month"`
	Labels  []int     `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
}

// chartsPayload is the subset embedded in the dashboard for Chart.js.
type chartsPayload struct {
	Categories CategoryPayload `json:"categories"`
	Monthly    MonthlyPayload  `json:"monthly"`
}

func newCategoryPayload(t report.Totals) CategoryPayload {
	labels := t.CategoryLabels()
	if labels == nil {
		labels = []string{}
	}
	return CategoryPayload{Labels: labels, Values: floats(t.CategoryValues())}
}

func newMonthlyPayload(m report.MonthlySeries) MonthlyPayload {
	return MonthlyPayload{
		Month:   m.DisplayMonth,
		Labels:  m.Labels(),
		Income:  floats(m.IncomeByDay),
		Expense: floats(m.ExpenseByDay),
	}
}

func NewReportPayload(r report.Report) ReportPayload {
	txs := make([]TransactionPayload, 0, len(r.Visible))
	for _, t := range r.Visible {
		txs = append(txs, TransactionPayload{
			ID:       t.ID,
			Type:     string(t.Kind),
			Category: t.Category,
			Amount:   t.Amount.String(),
			Date:     t.Date.String(),
			Comment:  t.Comment,
		})
	}
	return ReportPayload{
		Params: ParamsPayload{
			DateFrom:  r.Params.DateFrom,
			DateTo:    r.Params.DateTo,
			Category:  r.Params.Category,
			YearMonth: r.Params.YearMonth,
		},
		Totals: TotalsPayload{
			Income:  r.Totals.Income.InexactFloat64(),
			Expense: r.Totals.Expense.InexactFloat64(),
			Balance: r.Totals.Balance.InexactFloat64(),
		},
		Transactions: txs,
		Categories:   newCategoryPayload(r.Totals),
		Monthly:      newMonthlyPayload(r.Monthly),
	}
}

// formView fills the shared transaction fields of the add and edit forms.
type formView struct {
	ID       int64
	Kind     string
	Category string
	Amount   string
	Date     string
	Comment  string
}

func newFormView(t core.Transaction) formView {
	return formView{
		ID:       t.ID,
		Kind:     string(t.Kind),
		Category: t.Category,
		Amount:   t.Amount.String(),
		Date:     t.Date.String(),
		Comment:  t.Comment,
	}
}

type rowView struct {
	ID        int64
	Date      string
	KindLabel string
	Category  string
	Amount    string
	Comment   string
	IsIncome  bool
}

type indexView struct {
	Params          report.Params
	MonthValue      string
	DisplayMonth    string
	Income          string
	Expense         string
	Balance         string
	BalanceNegative bool
	Rows            []rowView
	Blank           formView
	Charts          chartsPayload
}

func newIndexView(r report.Report, now time.Time) indexView {
	rows := make([]rowView, 0, len(r.Visible))
	for _, t := range r.Visible {
		rows = append(rows, rowView{
			ID:        t.ID,
			Date:      t.Date.String(),
			KindLabel: kindLabel(t.Kind),
			Category:  t.Category,
			Amount:    core.Display(t.Amount.Decimal()),
			Comment:   t.Comment,
			IsIncome:  t.Kind == core.Income,
		})
	}
	return indexView{
		Params:          r.Params,
		MonthValue:      r.Monthly.DisplayMonth,
		DisplayMonth:    r.Monthly.DisplayMonth,
		Income:          core.Display(r.Totals.Income),
		Expense:         core.Display(r.Totals.Expense),
		Balance:         core.Display(r.Totals.Balance),
		BalanceNegative: r.Totals.Balance.IsNegative(),
		Rows:            rows,
		Blank:           formView{Kind: string(core.Expense), Date: now.Format("2006-01-02")},
		Charts: chartsPayload{
			Categories: newCategoryPayload(r.Totals),
			Monthly:    newMonthlyPayload(r.Monthly),
		},
	}
}
