package model

import "time"

// PredictionRequest is the grocery prediction form forwarded to the prediction API.
type PredictionRequest struct {
	Temperature       float64  `json:"temperature" validate:"gte=-50,lte=60"`
	Humidity          *float64 `json:"humidity,omitempty" validate:"omitempty,gte=0,lte=100"`
	ProductType       string   `json:"product_type" validate:"required"`
	HistoricalSales   float64  `json:"historical_sales" validate:"gte=0"`
	NumberOfGuests    *int     `json:"number_of_guests,omitempty" validate:"omitempty,gte=0"`
	QuantityOfFood    *float64 `json:"quantity_of_food,omitempty" validate:"omitempty,gt=0"`
	StorageConditions string   `json:"storage_conditions,omitempty"`
}

// RestaurantPredictionRequest is the restaurant prediction form.
type RestaurantPredictionRequest struct {
	FoodType          string `json:"food_type" validate:"required"`
	NumberOfGuests    int    `json:"number_of_guests" validate:"gt=0"`
	EventType         string `json:"event_type" validate:"required"`
	StorageCondition  string `json:"storage_condition" validate:"required"`
	PreparationMethod string `json:"preparation_method" validate:"required"`
	Location          string `json:"location" validate:"required"`
	PricingTier       string `json:"pricing_tier" validate:"required"`
}

// PredictionResponse is the prediction API result plus the fields derived for dashboards.
type PredictionResponse struct {
	Prediction      float64  `json:"prediction"`
	CO2Saved        float64  `json:"co2_saved"`
	Recommendations []string `json:"recommendations"`
	UtilizationRate *float64 `json:"utilization_rate,omitempty"`
	FoodType        string   `json:"food_type"`
	TotalFood       float64  `json:"total_food"`
	WasteAmount     float64  `json:"waste_amount"`
	WastePercentage int      `json:"waste_percentage"`
	CO2Emissions    float64  `json:"co2_emissions"`
}

// EstimateRequest is the business attributes form used by the stub estimator.
type EstimateRequest struct {
	BusinessType           string  `json:"businessType" validate:"required"`
	InventorySize          float64 `json:"inventorySize" validate:"gte=0"`
	PerishableItems        float64 `json:"perishableItems" validate:"gte=0"`
	AverageOrderSize       float64 `json:"averageOrderSize" validate:"gte=0"`
	StorageCapacity        float64 `json:"storageCapacity" validate:"gte=0"`
	CurrentWastePercentage float64 `json:"currentWastePercentage" validate:"gte=0,lte=100"`
	BusinessSize           string  `json:"businessSize"`
	Location               string  `json:"location"`
}

// Estimate is the stub prediction computed without the model.
type Estimate struct {
	WasteAmount      float64  `json:"wasteAmount"`
	SavingsPotential float64  `json:"savingsPotential"`
	Recommendations  []string `json:"recommendations"`
}

// Conditions are the ambient readings used to pre-fill forms.
type Conditions struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Draft is an autosaved form payload.
type Draft struct {
	FormID   string         `json:"form_id"`
	Fields   map[string]any `json:"fields"`
	Sequence uint64         `json:"sequence"`
	SavedAt  time.Time      `json:"saved_at"`
}
