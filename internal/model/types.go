// Package model defines domain types used by the service.
package model

// Category is the normalized product category of an inventory item.
type Category string

const (
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryBakery     Category = "bakery"
	CategoryGrains     Category = "grains"
	CategorySnacks     Category = "snacks"
	CategoryBeverages  Category = "beverages"
	CategoryCondiments Category = "condiments"
	CategorySpices     Category = "spices"
	CategoryFrozen     Category = "frozen"
	CategoryCanned     Category = "canned"
	CategoryPantry     Category = "pantry"
	CategoryDesserts   Category = "desserts"
	CategorySoups      Category = "soups"
	CategoryPrepared   Category = "prepared"
	CategoryOrganic    Category = "organic"
	CategorySpecialty  Category = "specialty"
	CategoryOther      Category = "other"
)

// StorageLocation is where an item is kept.
type StorageLocation string

const (
	StorageRefrigerator StorageLocation = "refrigerator"
	StorageFreezer      StorageLocation = "freezer"
	StoragePantry       StorageLocation = "pantry"
)

// InventoryItem represents one trackable food unit of a catalog snapshot.
type InventoryItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        Category        `json:"category"`
	StorageLocation StorageLocation `json:"storageLocation"`
	Vendor          string          `json:"vendor"`
	BatchNumber     string          `json:"batchNumber"`
	Quantity        int             `json:"quantity"`
	DaysUntilExpiry int             `json:"daysUntilExpiry"`
	InStock         bool            `json:"inStock"`
	ImageURL        string          `json:"imageUrl"`
	SimilarItems    []string        `json:"similarItems"`
}

// SearchFilters holds optional search constraints. Empty strings and nil
// pointers mean the filter was not supplied.
type SearchFilters struct {
	Category           Category        `json:"category,omitempty"`
	StorageLocation    StorageLocation `json:"storageLocation,omitempty"`
	InStock            *bool           `json:"inStock,omitempty"`
	MinQuantity        *int            `json:"minQuantity,omitempty"`
	MaxDaysUntilExpiry *int            `json:"maxDaysUntilExpiry,omitempty"`
}

// Pagination selects a 1-based page of results.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
