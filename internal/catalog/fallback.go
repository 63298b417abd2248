package catalog

import (
	"strings"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

// Fallback returns a fresh copy of the hand-authored seed list served when
// ingestion fails.
func Fallback() []model.InventoryItem {
	return []model.InventoryItem{
		seed("1", "Lettuce", model.CategoryVegetables, "local_farm", model.StorageRefrigerator, "B001", 5, 7,
			"Iceberg Lettuce", "Romaine Lettuce", "Green Lettuce", "Red Lettuce"),
		seed("2", "Milk", model.CategoryDairy, "dairy_farm", model.StorageRefrigerator, "B002", 2, 5,
			"Whole Milk", "Skim Milk", "2% Milk", "1% Milk"),
		seed("3", "Rice", model.CategoryGrains, "grocery_store", model.StoragePantry, "B003", 10, 365,
			"White Rice", "Brown Rice", "Long Grain Rice", "Short Grain Rice"),
		seed("4", "Cheese", model.CategoryDairy, "dairy_farm", model.StorageRefrigerator, "B004", 3, 14,
			"Cheddar", "Mozzarella", "Swiss", "Provolone"),
		seed("5", "Chicken", model.CategoryMeat, "local_butcher", model.StorageFreezer, "B005", 4, 30,
			"Whole Chicken", "Chicken Breast", "Chicken Thighs", "Chicken Wings"),
		seed("6", "Apples", model.CategoryFruits, "local_orchard", model.StorageRefrigerator, "B006", 12, 14,
			"Red Apples", "Green Apples", "Yellow Apples", "Pink Apples"),
		seed("7", "Bread", model.CategoryBakery, "local_bakery", model.StoragePantry, "B007", 2, 5,
			"White Bread", "Wheat Bread", "Rye Bread", "Sourdough"),
		seed("8", "Eggs", model.CategoryDairy, "local_farm", model.StorageRefrigerator, "B008", 18, 14,
			"Large Eggs", "Medium Eggs", "Small Eggs", "Extra Large Eggs"),
		seed("9", "Tomatoes", model.CategoryVegetables, "local_farm", model.StorageRefrigerator, "B009", 8, 7,
			"Red Tomatoes", "Green Tomatoes", "Yellow Tomatoes", "Cherry Tomatoes"),
		seed("10", "Pasta", model.CategoryGrains, "grocery_store", model.StoragePantry, "B010", 5, 365,
			"Spaghetti", "Penne", "Macaroni", "Fettuccine"),
		seed("11", "Yogurt", model.CategoryDairy, "dairy_farm", model.StorageRefrigerator, "B011", 4, 7,
			"Plain Yogurt", "Vanilla Yogurt", "Strawberry Yogurt", "Blueberry Yogurt"),
		seed("12", "Carrots", model.CategoryVegetables, "local_farm", model.StorageRefrigerator, "B012", 10, 14,
			"Orange Carrots", "Purple Carrots", "Yellow Carrots", "White Carrots"),
	}
}

func seed(id, name string, c model.Category, vendor string, s model.StorageLocation, batch string, qty, days int, similar ...string) model.InventoryItem {
	return model.InventoryItem{
		ID:              id,
		Name:            name,
		Category:        c,
		StorageLocation: s,
		Vendor:          vendor,
		BatchNumber:     batch,
		Quantity:        qty,
		DaysUntilExpiry: days,
		InStock:         true,
		ImageURL:        "/images/food/" + strings.ToLower(name) + ".jpg",
		SimilarItems:    similar,
	}
}
