package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetExpenses = "Expenses"
	SheetIncomes  = "Incomes"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []any{"Date", "Category", "Description", "Amount"}

type row struct {
	date        time.Time
	categoryID  *uuid.UUID
	description string
	amount      decimal.Decimal
}

// Workbook renders the finances into a workbook with one sheet for expenses
// and one for incomes. categories maps category IDs to their names.
func Workbook(finances models.Finances, categories map[uuid.UUID]string) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet of a new file is reused for the expenses
	err := f.SetSheetName(f.GetSheetName(0), SheetExpenses)
	if err != nil {
		return nil, err
	}

	expenses := make([]row, 0, len(finances.Expenses))
	for _, e := range finances.Expenses {
		expenses = append(expenses, row{e.Date, e.CategoryID, e.Description, e.Amount})
	}

	err = writeSheet(f, SheetExpenses, expenses, finances.ExpenseTotal, categories)
	if err != nil {
		return nil, err
	}

	_, err = f.NewSheet(SheetIncomes)
	if err != nil {
		return nil, err
	}

	incomes := make([]row, 0, len(finances.Incomes))
	for _, i := range finances.Incomes {
		incomes = append(incomes, row{i.Date, i.CategoryID, i.Description, i.Amount})
	}

	err = writeSheet(f, SheetIncomes, incomes, finances.IncomeTotal, categories)
	if err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, rows []row, total decimal.Decimal, categories map[uuid.UUID]string) error {
	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		category := ""
		if r.categoryID != nil {
			category = categories[*r.categoryID]
		}

		values := []any{r.date.Format(time.DateOnly), category, r.description, r.amount.InexactFloat64()}
		err = f.SetSheetRow(sheet, cell, &values)
		if err != nil {
			return err
		}
	}

	err = f.SetSheetRow(sheet, fmt.Sprintf("A%d", len(rows)+2), &[]any{"Total", nil, nil, total.InexactFloat64()})
	if err != nil {
		return err
	}

	err = f.SetColWidth(sheet, "A", "A", 12)
	if err != nil {
		return err
	}

	err = f.SetColWidth(sheet, "B", "B", 20)
	if err != nil {
		return err
	}

	return f.SetColWidth(sheet, "C", "C", 40)
}
