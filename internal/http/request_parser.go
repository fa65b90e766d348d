// Package http serves the dashboard, its JSON twin and the transaction
// write forms.
//
// This file turns query strings and form bodies into domain values.
package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"finance/internal/core"
	"finance/internal/report"
)

// maxFormBytes caps write request bodies.
const maxFormBytes = 64 << 10

// ParseReportParams reads from, to, q and month. Values are passed through
// untouched apart from sanitizing; the report layer decides what they mean.
func ParseReportParams(query url.Values) report.Params {
	return report.Params{
		DateFrom:  sanitizeInput(query.Get("from")),
		DateTo:    sanitizeInput(query.Get("to")),
		Category:  sanitizeInput(query.Get("q")),
		YearMonth: sanitizeInput(query.Get("month")),
	}
}

// ParseTransactionForm builds a validated transaction from the add and edit
// forms. The returned transaction has no ID.
func ParseTransactionForm(form url.Values) (core.Transaction, error) {
	kind, err := core.ParseKind(form.Get("type"))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(form.Get("amount"))
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(sanitizeInput(form.Get("date")))
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Kind:     kind,
		Category: sanitizeInput(form.Get("category")),
		Amount:   amount,
		Date:     date,
		Comment:  sanitizeInput(form.Get("comment")),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parseForm bounds the body before parsing it.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

// transactionID reads the {id} route variable.
func transactionID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
