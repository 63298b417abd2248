package prediction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

// SavingsPerUnit is the dollar value assigned to each unit of avoided waste.
var SavingsPerUnit = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// Estimate computes the stub prediction used when no model is consulted:
// waste is the perishable count times the current waste percentage.
func Estimate(req model.EstimateRequest) model.Estimate {
	waste := decimal.NewFromFloat(req.PerishableItems).
		Mul(decimal.NewFromFloat(req.CurrentWastePercentage)).
		Div(hundred)
	savings := waste.Mul(SavingsPerUnit)
	return model.Estimate{
		WasteAmount:      waste.InexactFloat64(),
		SavingsPotential: savings.InexactFloat64(),
		Recommendations: []string{
			"Reduce order of perishables by 10%",
			"Promote items nearing expiration",
			fmt.Sprintf("Optimize %s inventory levels", req.BusinessType),
		},
	}
}
