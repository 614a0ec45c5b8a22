// Package finance aggregates transactions into sales KPIs and monthly summaries.
package finance

import (
	"math"
	"time"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

var MonthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type MonthKPI struct {
	Label     string  `json:"label"`
	Month     int     `json:"month"`
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	Variation float64 `json:"variation"`
}

// PeriodKPI compares a quarter or semester against the same period a year earlier.
type PeriodKPI struct {
	Label      string  `json:"label"`
	Current    float64 `json:"current"`
	Previous   float64 `json:"previous"`
	Difference float64 `json:"difference"`
}

type KPIs struct {
	Year          int         `json:"year"`
	CurrentTotal  float64     `json:"current_total"`
	PreviousTotal float64     `json:"previous_total"`
	Difference    float64     `json:"difference"`
	Variation     float64     `json:"variation"`
	Monthly       []MonthKPI  `json:"monthly"`
	Quarterly     []PeriodKPI `json:"quarterly"`
	Semesters     []PeriodKPI `json:"semesters"`
}

// Variation is the percent change from previous to current rounded to two
// decimals; 0 when there is no previous amount to compare with.
func Variation(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

// BuildKPIs compares income of year against year-1. Expenses and
// transactions dated outside those two years are ignored.
func BuildKPIs(year int, txs []entity.Transaction) KPIs {
	var cur, prev [12]float64
	for _, t := range txs {
		if t.Type != entity.TxIncome {
			continue
		}
		m := int(t.Date.Month()) - 1
		switch t.Date.Year() {
		case year:
			cur[m] += t.Amount
		case year - 1:
			prev[m] += t.Amount
		}
	}

	k := KPIs{Year: year, Monthly: make([]MonthKPI, 0, 12)}
	for i := 0; i < 12; i++ {
		k.CurrentTotal += cur[i]
		k.PreviousTotal += prev[i]
		k.Monthly = append(k.Monthly, MonthKPI{
			Label:     MonthLabels[i],
			Month:     i + 1,
			Current:   cur[i],
			Previous:  prev[i],
			Variation: Variation(cur[i], prev[i]),
		})
	}
	k.Difference = k.CurrentTotal - k.PreviousTotal
	k.Variation = Variation(k.CurrentTotal, k.PreviousTotal)
	k.Quarterly = periods(cur, prev, 3, "T")
	k.Semesters = periods(cur, prev, 6, "Sem")
	return k
}

func periods(cur, prev [12]float64, size int, prefix string) []PeriodKPI {
	out := make([]PeriodKPI, 0, 12/size)
	for start := 0; start < 12; start += size {
		p := PeriodKPI{Label: prefix + string(rune('1'+start/size))}
		for m := start; m < start+size; m++ {
			p.Current += cur[m]
			p.Previous += prev[m]
		}
		p.Difference = p.Current - p.Previous
		out = append(out, p)
	}
	return out
}

type MonthSummary struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Summarize buckets transactions into the last n calendar months ending at
// now's month, oldest first. Months without activity are present with zeros.
func Summarize(txs []entity.Transaction, now time.Time, n int) []MonthSummary {
	if n <= 0 {
		return []MonthSummary{}
	}
	first := SummaryStart(now, n)
	out := make([]MonthSummary, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out[i].Month = key
		index[key] = i
	}
	for _, t := range txs {
		i, ok := index[t.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch t.Type {
		case entity.TxIncome:
			out[i].Income += t.Amount
		case entity.TxExpense:
			out[i].Expense += t.Amount
		}
	}
	for i := range out {
		out[i].Balance = out[i].Income - out[i].Expense
	}
	return out
}

// SummaryStart is the first instant covered by Summarize for the same arguments.
func SummaryStart(now time.Time, n int) time.Time {
	if n <= 0 {
		n = 1
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
