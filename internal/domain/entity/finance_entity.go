package entity

import "time"

const (
	TxIncome  = "ingreso"
	TxExpense = "egreso"
)

type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

var txCategories = map[string][]string{
	TxIncome:  {"ventas", "servicios", "otros_ingresos"},
	TxExpense: {"compras", "salarios", "alquiler", "servicios_basicos", "marketing", "otros_gastos"},
}

// ValidCategory reports whether category belongs to the transaction type.
func ValidCategory(txType, category string) bool {
	for _, c := range txCategories[txType] {
		if c == category {
			return true
		}
	}
	return false
}

// PaymentMethods accepted on transactions.
var PaymentMethods = []string{"efectivo", "transferencia", "tarjeta", "otro"}
