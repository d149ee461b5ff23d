// Package ledger derives patient balances from visits and payments.
//
// A balance is never stored. Every read recomputes two independent
// aggregates against the store: the charges for all of the patient's visit
// line items (at the procedure's current price) and the payments received.
// The clinic data volume is small, so correctness wins over latency.
package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is a priced visit line item: a procedure's current price and the
// quantity performed.
type LineItem struct {
	PriceJod float64
	Quantity int
}

// Calculator computes patient balances against a persistence handle.
type Calculator struct {
	db *gorm.DB
}

// NewCalculator creates a Calculator bound to the given handle.
func NewCalculator(db *gorm.DB) *Calculator {
	return &Calculator{db: db}
}

// VisitCharges sums price x quantity over every line item of every visit of
// the patient, at current procedure prices. Line items whose procedure has
// been deleted drop out of the join and contribute nothing.
func (calc *Calculator) VisitCharges(patientID string) (decimal.Decimal, error) {
	var items []LineItem
	err := calc.db.Table("visit_procedures").
		Select("procedures.price_jod AS price_jod, visit_procedures.quantity AS quantity").
		Joins("JOIN visits ON visits.id = visit_procedures.visit_id").
		Joins("JOIN procedures ON procedures.id = visit_procedures.procedure_id").
		Where("visits.patient_id = ?", patientID).
		Scan(&items).Error
	if err != nil {
		return decimal.Zero, err
	}
	return TotalCost(items), nil
}

// PaymentsTotal sums the amounts of every payment recorded for the patient.
func (calc *Calculator) PaymentsTotal(patientID string) (decimal.Decimal, error) {
	var amounts []float64
	err := calc.db.Table("payments").
		Where("patient_id = ?", patientID).
		Pluck("amount_jod", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount))
	}
	return total, nil
}

// Balance returns the patient's outstanding balance: visit charges minus
// payments, rounded to 2 decimal places. A patient with no visits and no
// payments has a balance of exactly 0.
func (calc *Calculator) Balance(patientID string) (float64, error) {
	charges, err := calc.VisitCharges(patientID)
	if err != nil {
		return 0, err
	}
	paid, err := calc.PaymentsTotal(patientID)
	if err != nil {
		return 0, err
	}
	return charges.Sub(paid).Round(2).InexactFloat64(), nil
}

// TotalCost sums price x quantity over a set of line items, rounded to 2
// decimal places.
func TotalCost(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.PriceJod)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}
