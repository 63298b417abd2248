package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

func TestEstimate(t *testing.T) {
	e := Estimate(model.EstimateRequest{
		BusinessType:           "restaurant",
		PerishableItems:        200,
		CurrentWastePercentage: 15,
	})
	assert.Equal(t, 30.0, e.WasteAmount)
	assert.Equal(t, 150.0, e.SavingsPotential)
	assert.Equal(t, []string{
		"Reduce order of perishables by 10%",
		"Promote items nearing expiration",
		"Optimize restaurant inventory levels",
	}, e.Recommendations)
}

func TestEstimateAvoidsBinaryDrift(t *testing.T) {
	e := Estimate(model.EstimateRequest{BusinessType: "grocery", PerishableItems: 3, CurrentWastePercentage: 10})
	assert.Equal(t, 0.3, e.WasteAmount)
	assert.Equal(t, 1.5, e.SavingsPotential)

	zero := Estimate(model.EstimateRequest{BusinessType: "grocery"})
	assert.Zero(t, zero.WasteAmount)
	assert.Zero(t, zero.SavingsPotential)
}

func TestMappings(t *testing.T) {
	assert.Equal(t, "dairy", ProductTypeForCategory("Dairy"))
	assert.Equal(t, "other", ProductTypeForCategory("spices"))
	assert.Equal(t, "Refrigerated", StorageConditions("refrigerator"))
	assert.Equal(t, "Frozen", StorageConditions("FREEZER"))
	assert.Equal(t, "Heated", StorageConditions("heated"))
	assert.Equal(t, "Room Temperature", StorageConditions("garage"))
	assert.Equal(t, 1500.0, EstimateHistoricalSales("dairy"))
	assert.Equal(t, 500.0, EstimateHistoricalSales("organic"))
}

func TestRequestForItem(t *testing.T) {
	item := model.InventoryItem{Name: "Milk", Category: model.CategoryDairy, StorageLocation: model.StorageRefrigerator, Quantity: 2}
	req := RequestForItem(item, model.Conditions{Temperature: 22, Humidity: 55})
	assert.Equal(t, 22.0, req.Temperature)
	require.NotNil(t, req.Humidity)
	assert.Equal(t, 55.0, *req.Humidity)
	assert.Equal(t, "dairy", req.ProductType)
	assert.Equal(t, 1500.0, req.HistoricalSales)
	assert.Equal(t, "Refrigerated", req.StorageConditions)
	require.NotNil(t, req.QuantityOfFood)
	assert.Equal(t, 2.0, *req.QuantityOfFood)

	item.Quantity = 0
	assert.Nil(t, RequestForItem(item, model.Conditions{}).QuantityOfFood)
}

func TestWeatherLookups(t *testing.T) {
	w := NewWeather(0)
	ctx := context.Background()

	temp, err := w.Temperature(ctx, "Miami")
	require.NoError(t, err)
	assert.Equal(t, 30.0, temp)

	hum, err := w.Humidity(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, DefaultHumidity, hum)

	cond, err := w.CurrentConditions(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.Conditions{Location: "Charlottesville", Temperature: 25, Humidity: 60}, cond)
}

func TestWeatherLookupsRunConcurrently(t *testing.T) {
	w := NewWeather(100 * time.Millisecond)
	start := time.Now()
	cond, err := w.CurrentConditions(context.Background(), "Chicago")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 190*time.Millisecond)
	assert.Equal(t, 20.0, cond.Temperature)
	assert.Equal(t, 65.0, cond.Humidity)
}

func TestWeatherHonorsContext(t *testing.T) {
	w := NewWeather(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.CurrentConditions(ctx, "Miami")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Struct(model.PredictionRequest{Temperature: 20, ProductType: "dairy", HistoricalSales: 10}))

	err := v.Struct(model.PredictionRequest{Temperature: 99, HistoricalSales: -1, Humidity: floatp(140)})
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, map[string]string{
		"temperature":      "lte",
		"humidity":         "lte",
		"product_type":     "required",
		"historical_sales": "gte",
	}, fields)

	err = v.Struct(model.EstimateRequest{CurrentWastePercentage: 120})
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
