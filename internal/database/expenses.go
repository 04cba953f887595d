package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

const dateLayout = "2006-01-02"

// ExpenseFilter narrows a listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Month    int
	Year     int
	Category model.Category
}

const expenseColumns = `id, date, COALESCE(description, ''), category, COALESCE(vendor, ''),
	amount_ht, tva, amount_ttc, tva_rate, reconciled,
	COALESCE(file_path, ''), COALESCE(ocr_raw, ''), created_at, COALESCE(updated_at, '')`

// CreateExpense inserts a record and returns its assigned ID.
func (db *DB) CreateExpense(e *model.Expense) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO expenses (date, description, category, vendor, amount_ht, tva, amount_ttc, tva_rate, reconciled, file_path, ocr_raw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date.Format(dateLayout), e.Description, string(e.Category), e.Vendor,
		nullDecimal(e.AmountHT), nullDecimal(e.TVA), e.AmountTTC.String(), nullDecimal(e.TVARate),
		boolToInt(e.Reconciled), e.FilePath, e.OCRRaw,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return res.LastInsertId()
}

// GetExpense fetches one record, sql.ErrNoRows when absent.
func (db *DB) GetExpense(id int64) (*model.Expense, error) {
	row := db.QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	return scanExpense(row)
}

// ListExpenses returns records matching the filter, newest first, with
// the tax-inclusive sum across them.
func (db *DB) ListExpenses(filter ExpenseFilter) ([]model.Expense, decimal.Decimal, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	var args []interface{}

	if filter.Month > 0 {
		query += ` AND strftime('%m', date) = ?`
		args = append(args, fmt.Sprintf("%02d", filter.Month))
	}
	if filter.Year > 0 {
		query += ` AND strftime('%Y', date) = ?`
		args = append(args, fmt.Sprintf("%04d", filter.Year))
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}

	query += ` ORDER BY date(date) DESC, id DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	total := decimal.Zero
	for rows.Next() {
		e, err := scanExpenseRows(rows)
		if err != nil {
			return nil, decimal.Zero, err
		}
		expenses = append(expenses, *e)
		total = total.Add(e.AmountTTC)
	}
	return expenses, total, rows.Err()
}

// ListForPeriod returns one month's records in date order, for reports.
func (db *DB) ListForPeriod(month, year int) ([]model.Expense, error) {
	rows, err := db.Query(`
		SELECT `+expenseColumns+` FROM expenses
		WHERE strftime('%m', date) = ? AND strftime('%Y', date) = ?
		ORDER BY date(date), id`,
		fmt.Sprintf("%02d", month), fmt.Sprintf("%04d", year),
	)
	if err != nil {
		return nil, fmt.Errorf("query period: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpenseRows(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// UpdateExpense rewrites the editable fields of a record.
func (db *DB) UpdateExpense(e *model.Expense) error {
	res, err := db.Exec(`
		UPDATE expenses
		SET date = ?, description = ?, category = ?, vendor = ?,
		    amount_ht = ?, tva = ?, amount_ttc = ?, tva_rate = ?, reconciled = ?,
		    updated_at = datetime('now')
		WHERE id = ?`,
		e.Date.Format(dateLayout), e.Description, string(e.Category), e.Vendor,
		nullDecimal(e.AmountHT), nullDecimal(e.TVA), e.AmountTTC.String(), nullDecimal(e.TVARate),
		boolToInt(e.Reconciled), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteExpense removes a record.
func (db *DB) DeleteExpense(id int64) error {
	res, err := db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row *sql.Row) (*model.Expense, error) {
	e, err := scanExpenseRows(row)
	if err == sql.ErrNoRows {
		return nil, err
	}
	return e, err
}

func scanExpenseRows(s rowScanner) (*model.Expense, error) {
	var e model.Expense
	var date, created, updated, category, ttc string
	var ht, tva, rate sql.NullString
	var reconciled int

	if err := s.Scan(&e.ID, &date, &e.Description, &category, &e.Vendor,
		&ht, &tva, &ttc, &rate, &reconciled,
		&e.FilePath, &e.OCRRaw, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}

	e.Category = model.Category(category)
	e.Reconciled = reconciled != 0

	var err error
	if e.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	if e.AmountTTC, err = decimal.NewFromString(ttc); err != nil {
		return nil, fmt.Errorf("parse amount_ttc %q: %w", ttc, err)
	}
	if e.AmountHT, err = parseNullDecimal(ht); err != nil {
		return nil, err
	}
	if e.TVA, err = parseNullDecimal(tva); err != nil {
		return nil, err
	}
	if e.TVARate, err = parseNullDecimal(rate); err != nil {
		return nil, err
	}
	if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
		e.CreatedAt = t
	}
	if updated != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", updated); err == nil {
			e.UpdatedAt = t
		}
	}
	return &e, nil
}

func nullDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullDecimal(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, fmt.Errorf("parse decimal %q: %w", s.String, err)
	}
	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
