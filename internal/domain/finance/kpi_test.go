package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

func tx(typ string, amount float64, y int, m time.Month, d int) entity.Transaction {
	return entity.Transaction{Type: typ, Amount: amount, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestVariation(t *testing.T) {
	assert.Equal(t, 0.0, Variation(100, 0))
	assert.Equal(t, 50.0, Variation(150, 100))
	assert.Equal(t, -100.0, Variation(0, 100))
	assert.Equal(t, 33.33, Variation(400, 300))
}

func TestBuildKPIs(t *testing.T) {
	txs := []entity.Transaction{
		tx(entity.TxIncome, 100, 2026, time.January, 5),
		tx(entity.TxIncome, 50, 2026, time.January, 20),
		tx(entity.TxIncome, 200, 2026, time.July, 1),
		tx(entity.TxIncome, 100, 2025, time.January, 3),
		tx(entity.TxIncome, 100, 2025, time.December, 31),
		tx(entity.TxExpense, 999, 2026, time.January, 6),
		tx(entity.TxIncome, 500, 2024, time.March, 1),
	}

	k := BuildKPIs(2026, txs)

	assert.Equal(t, 350.0, k.CurrentTotal)
	assert.Equal(t, 200.0, k.PreviousTotal)
	assert.Equal(t, 150.0, k.Difference)
	assert.Equal(t, 75.0, k.Variation)

	require.Len(t, k.Monthly, 12)
	assert.Equal(t, MonthKPI{Label: "Ene", Month: 1, Current: 150, Previous: 100, Variation: 50}, k.Monthly[0])
	assert.Equal(t, "Dic", k.Monthly[11].Label)
	assert.Equal(t, -100.0, k.Monthly[11].Variation)
	assert.Equal(t, 0.0, k.Monthly[6].Variation)

	require.Len(t, k.Quarterly, 4)
	assert.Equal(t, PeriodKPI{Label: "T1", Current: 150, Previous: 100, Difference: 50}, k.Quarterly[0])
	assert.Equal(t, PeriodKPI{Label: "T3", Current: 200, Previous: 0, Difference: 200}, k.Quarterly[2])
	assert.Equal(t, PeriodKPI{Label: "T4", Current: 0, Previous: 100, Difference: -100}, k.Quarterly[3])

	require.Len(t, k.Semesters, 2)
	assert.Equal(t, PeriodKPI{Label: "Sem1", Current: 150, Previous: 100, Difference: 50}, k.Semesters[0])
	assert.Equal(t, PeriodKPI{Label: "Sem2", Current: 200, Previous: 100, Difference: 100}, k.Semesters[1])
}

func TestBuildKPIs_Empty(t *testing.T) {
	k := BuildKPIs(2026, nil)
	assert.Zero(t, k.CurrentTotal)
	assert.Zero(t, k.Variation)
	assert.Len(t, k.Monthly, 12)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC)
	txs := []entity.Transaction{
		tx(entity.TxIncome, 300, 2026, time.February, 1),
		tx(entity.TxExpense, 120, 2026, time.February, 2),
		tx(entity.TxIncome, 80, 2025, time.December, 24),
		tx(entity.TxIncome, 1000, 2025, time.October, 1),
	}

	got := Summarize(txs, now, 3)

	assert.Equal(t, []MonthSummary{
		{Month: "2025-12", Income: 80, Balance: 80},
		{Month: "2026-01"},
		{Month: "2026-02", Income: 300, Expense: 120, Balance: 180},
	}, got)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), SummaryStart(now, 3))
	assert.Empty(t, Summarize(txs, now, 0))
}
