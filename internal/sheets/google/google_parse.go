package google

import (
	"fmt"
	"strconv"
	"strings"

	"finance/internal/core"
)

// valueInputOption stores cells as typed. Category and comment are user
// text, so a leading "=" must stay text rather than become a formula.
const valueInputOption = "RAW"

// Column order: ID | Date | Kind | Category | Amount | Comment
func transactionRow(t core.Transaction) []any {
	return []any{
		strconv.FormatInt(t.ID, 10),
		t.Date.String(),
		t.Kind.String(),
		t.Category,
		t.Amount.String(),
		t.Comment,
	}
}

func rowRange(sheet string, row int) string {
	return fmt.Sprintf("%s!A%d:F%d", sheet, row, row)
}

// findRow returns the 1-based row whose first cell holds id, or 0. Cleared
// rows and headers never match.
func findRow(values [][]any, id int64) int {
	want := strconv.FormatInt(id, 10)
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == want {
			return i + 1
		}
	}
	return 0
}
