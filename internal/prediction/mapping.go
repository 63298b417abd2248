package prediction

import (
	"strings"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

var productTypes = map[string]string{
	"vegetables": "vegetables",
	"fruits":     "fruits",
	"dairy":      "dairy",
	"meat":       "meat",
	"bakery":     "bakery",
	"grains":     "grains",
	"seafood":    "seafood",
	"frozen":     "frozen",
	"canned":     "canned",
	"beverages":  "beverages",
	"snacks":     "snacks",
	"condiments": "condiments",
}

var storageConditions = map[string]string{
	"refrigerator": "Refrigerated",
	"freezer":      "Frozen",
	"pantry":       "Room Temperature",
	"counter":      "Room Temperature",
	"display":      "Room Temperature",
	"heated":       "Heated",
}

var historicalSales = map[string]float64{
	"vegetables": 1200,
	"fruits":     1000,
	"dairy":      1500,
	"meat":       800,
	"bakery":     600,
	"grains":     400,
	"seafood":    300,
	"frozen":     500,
	"canned":     200,
	"beverages":  700,
	"snacks":     900,
	"condiments": 150,
}

// ProductTypeForCategory maps an inventory category to the API product type.
func ProductTypeForCategory(category string) string {
	if t, ok := productTypes[strings.ToLower(category)]; ok {
		return t
	}
	return "other"
}

// StorageConditions maps a storage location to the API storage condition.
func StorageConditions(location string) string {
	if c, ok := storageConditions[strings.ToLower(location)]; ok {
		return c
	}
	return "Room Temperature"
}

// EstimateHistoricalSales returns a placeholder sales figure per category.
func EstimateHistoricalSales(category string) float64 {
	if s, ok := historicalSales[strings.ToLower(category)]; ok {
		return s
	}
	return 500
}

// RequestForItem builds a grocery prediction request for a catalog item
// under the given conditions.
func RequestForItem(item model.InventoryItem, cond model.Conditions) model.PredictionRequest {
	humidity := cond.Humidity
	quantity := float64(item.Quantity)
	req := model.PredictionRequest{
		Temperature:       cond.Temperature,
		Humidity:          &humidity,
		ProductType:       ProductTypeForCategory(string(item.Category)),
		HistoricalSales:   EstimateHistoricalSales(string(item.Category)),
		StorageConditions: StorageConditions(string(item.StorageLocation)),
	}
	if quantity > 0 {
		req.QuantityOfFood = &quantity
	}
	return req
}
