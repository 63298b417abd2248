package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFoodFactsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "*", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))
		assert.Equal(t, "500", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"products":[
			{"product_name":"Greek Yogurt","categories":"Dairy products","brands":"Fage","image_url":"x"},
			{"categories":"Snacks"}
		]}`))
	}))
	defer srv.Close()

	src := NewOpenFoodFacts(srv.URL+"/cgi/search.pl", time.Second)
	got, err := src.Fetch(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RawProduct{ProductName: "Greek Yogurt", Categories: "Dairy products", Brands: "Fage"}, got[0])
	assert.Equal(t, "", got[1].ProductName)
}

func TestOpenFoodFactsMissingProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer srv.Close()

	_, err := NewOpenFoodFacts(srv.URL, time.Second).Fetch(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestOpenFoodFactsEmptyProductsIsNotAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	got, err := NewOpenFoodFacts(srv.URL, time.Second).Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenFoodFactsErrors(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	_, err := NewOpenFoodFacts(bad.URL, time.Second).Fetch(context.Background(), 10)
	assert.Error(t, err)

	garbled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer garbled.Close()
	_, err = NewOpenFoodFacts(garbled.URL, time.Second).Fetch(context.Background(), 10)
	assert.Error(t, err)
}

func TestCatalogFallsBackWhenSourceServerFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := newTestCatalog(NewOpenFoodFacts(srv.URL, time.Second), store, &clock{t: time.Now()})
	assert.Len(t, c.Snapshot(context.Background()), 12)
	_, ok, _ := store.Load(context.Background())
	assert.False(t, ok)
}
