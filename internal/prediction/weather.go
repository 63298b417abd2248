package prediction

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

const (
	DefaultLocation     = "Charlottesville"
	DefaultTemperature  = 25.0
	DefaultHumidity     = 60.0
	DefaultWeatherDelay = 500 * time.Millisecond
)

var temperatures = map[string]float64{
	"Charlottesville": 25,
	"New York":        22,
	"Los Angeles":     28,
	"Chicago":         20,
	"Miami":           30,
}

var humidities = map[string]float64{
	"Charlottesville": 60,
	"New York":        55,
	"Los Angeles":     50,
	"Chicago":         65,
	"Miami":           75,
}

// Weather serves canned readings for a few cities after a simulated lookup
// latency. Unknown cities get the defaults.
type Weather struct {
	delay time.Duration
}

func NewWeather(delay time.Duration) *Weather {
	return &Weather{delay: delay}
}

// Temperature returns the current temperature in °C at location.
func (w *Weather) Temperature(ctx context.Context, location string) (float64, error) {
	return w.lookup(ctx, temperatures, location, DefaultTemperature)
}

// Humidity returns the current relative humidity in percent at location.
func (w *Weather) Humidity(ctx context.Context, location string) (float64, error) {
	return w.lookup(ctx, humidities, location, DefaultHumidity)
}

// CurrentConditions looks up temperature and humidity concurrently.
func (w *Weather) CurrentConditions(ctx context.Context, location string) (model.Conditions, error) {
	if location == "" {
		location = DefaultLocation
	}
	cond := model.Conditions{Location: location}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := w.Temperature(gctx, location)
		cond.Temperature = t
		return err
	})
	g.Go(func() error {
		h, err := w.Humidity(gctx, location)
		cond.Humidity = h
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Conditions{}, err
	}
	return cond, nil
}

func (w *Weather) lookup(ctx context.Context, table map[string]float64, location string, def float64) (float64, error) {
	if w.delay > 0 {
		t := time.NewTimer(w.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	}
	if location == "" {
		location = DefaultLocation
	}
	if v, ok := table[location]; ok {
		return v, nil
	}
	return def, nil
}
