package database_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/database"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Init())
	return db
}

func sampleExpense(date time.Time) *model.Expense {
	ht := decimal.RequireFromString("43.49")
	tva := decimal.RequireFromString("5.51")
	rate := decimal.NewFromInt(10)

	return &model.Expense{
		Date:        date,
		Description: "Déjeuner client",
		Category:    model.CategoryRepas,
		Vendor:      "CHEZ MARCEL",
		AmountHT:    &ht,
		TVA:         &tva,
		AmountTTC:   decimal.RequireFromString("49.00"),
		TVARate:     &rate,
		Reconciled:  true,
		FilePath:    "uploads/abc.jpg",
		OCRRaw:      "CHEZ MARCEL\nTOTAL 49,00 €",
	}
}

func TestCreateAndGetExpense(t *testing.T) {
	db := openTestDB(t)

	e := sampleExpense(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	id, err := db.CreateExpense(e)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := db.GetExpense(id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.True(t, e.Date.Equal(got.Date))
	assert.Equal(t, e.Description, got.Description)
	assert.Equal(t, e.Category, got.Category)
	assert.Equal(t, e.Vendor, got.Vendor)
	require.NotNil(t, got.AmountHT)
	assert.True(t, got.AmountHT.Equal(*e.AmountHT))
	require.NotNil(t, got.TVA)
	assert.True(t, got.TVA.Equal(*e.TVA))
	assert.True(t, got.AmountTTC.Equal(e.AmountTTC))
	require.NotNil(t, got.TVARate)
	assert.True(t, got.TVARate.Equal(*e.TVARate))
	assert.True(t, got.Reconciled)
	assert.Equal(t, e.FilePath, got.FilePath)
	assert.Equal(t, e.OCRRaw, got.OCRRaw)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateExpense_NullableAmounts(t *testing.T) {
	db := openTestDB(t)

	e := &model.Expense{
		Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryAutre,
		AmountTTC: decimal.RequireFromString("12.00"),
	}
	id, err := db.CreateExpense(e)
	require.NoError(t, err)

	got, err := db.GetExpense(id)
	require.NoError(t, err)

	assert.Nil(t, got.AmountHT)
	assert.Nil(t, got.TVA)
	assert.Nil(t, got.TVARate)
	assert.False(t, got.Reconciled)
}

func TestGetExpense_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetExpense(999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListExpenses_Filters(t *testing.T) {
	db := openTestDB(t)

	march := sampleExpense(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	april := sampleExpense(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	april.Category = model.CategoryTransport
	april.AmountTTC = decimal.RequireFromString("20.00")
	lastYear := sampleExpense(time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC))

	for _, e := range []*model.Expense{march, april, lastYear} {
		_, err := db.CreateExpense(e)
		require.NoError(t, err)
	}

	// no filter: everything, newest first
	all, total, err := db.ListExpenses(database.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.After(all[1].Date))
	assert.True(t, total.Equal(decimal.RequireFromString("118.00")))

	// month+year
	got, total, err := db.ListExpenses(database.ExpenseFilter{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Date.Equal(march.Date))
	assert.True(t, total.Equal(decimal.RequireFromString("49.00")))

	// month across years
	got, _, err = db.ListExpenses(database.ExpenseFilter{Month: 3})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// category
	got, _, err = db.ListExpenses(database.ExpenseFilter{Category: model.CategoryTransport})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.CategoryTransport, got[0].Category)
}

func TestListForPeriod(t *testing.T) {
	db := openTestDB(t)

	second := sampleExpense(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	first := sampleExpense(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	other := sampleExpense(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	for _, e := range []*model.Expense{second, first, other} {
		_, err := db.CreateExpense(e)
		require.NoError(t, err)
	}

	got, err := db.ListForPeriod(3, 2024)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// reports run oldest first
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestUpdateExpense(t *testing.T) {
	db := openTestDB(t)

	e := sampleExpense(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	id, err := db.CreateExpense(e)
	require.NoError(t, err)

	e.ID = id
	e.Description = "Repas équipe"
	e.Category = model.CategoryFormation
	e.AmountTTC = decimal.RequireFromString("55.00")
	e.AmountHT = nil
	e.Reconciled = false

	require.NoError(t, db.UpdateExpense(e))

	got, err := db.GetExpense(id)
	require.NoError(t, err)
	assert.Equal(t, "Repas équipe", got.Description)
	assert.Equal(t, model.CategoryFormation, got.Category)
	assert.True(t, got.AmountTTC.Equal(decimal.RequireFromString("55.00")))
	assert.Nil(t, got.AmountHT)
	assert.False(t, got.Reconciled)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestUpdateExpense_NotFound(t *testing.T) {
	db := openTestDB(t)

	e := sampleExpense(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	e.ID = 999
	assert.ErrorIs(t, db.UpdateExpense(e), sql.ErrNoRows)
}

func TestDeleteExpense(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateExpense(sampleExpense(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, db.DeleteExpense(id))

	_, err = db.GetExpense(id)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, db.DeleteExpense(id), sql.ErrNoRows)
}

func TestAmountsSurviveRoundTrip(t *testing.T) {
	db := openTestDB(t)

	// Values that lose precision as float64 must come back exact.
	ht := decimal.RequireFromString("0.10")
	e := &model.Expense{
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryAutre,
		AmountHT:  &ht,
		AmountTTC: decimal.RequireFromString("1234567.89"),
	}
	id, err := db.CreateExpense(e)
	require.NoError(t, err)

	got, err := db.GetExpense(id)
	require.NoError(t, err)
	assert.True(t, got.AmountTTC.Equal(e.AmountTTC))
	require.NotNil(t, got.AmountHT)
	assert.True(t, got.AmountHT.Equal(ht))
}
