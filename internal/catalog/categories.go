package catalog

import (
	"strings"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

type categoryRule struct {
	key      string
	category model.Category
}

// categoryRules is matched in order against the lower-cased raw category
// text; the first key contained in it wins.
var categoryRules = []categoryRule{
	{"dairy", model.CategoryDairy},
	{"meat", model.CategoryMeat},
	{"fish", model.CategoryMeat},
	{"seafood", model.CategoryMeat},
	{"vegetables", model.CategoryVegetables},
	{"fruits", model.CategoryFruits},
	{"bakery", model.CategoryBakery},
	{"pasta", model.CategoryGrains},
	{"rice", model.CategoryGrains},
	{"cereals", model.CategoryGrains},
	{"snacks", model.CategorySnacks},
	{"beverages", model.CategoryBeverages},
	{"condiments", model.CategoryCondiments},
	{"spices", model.CategorySpices},
	{"sauces", model.CategoryCondiments},
	{"frozen", model.CategoryFrozen},
	{"canned", model.CategoryCanned},
	{"dried", model.CategoryPantry},
	{"pantry", model.CategoryPantry},
	{"desserts", model.CategoryDesserts},
	{"soups", model.CategorySoups},
	{"prepared", model.CategoryPrepared},
	{"organic", model.CategoryOrganic},
	{"gluten-free", model.CategorySpecialty},
	{"vegan", model.CategorySpecialty},
	{"vegetarian", model.CategorySpecialty},
	{"kosher", model.CategorySpecialty},
	{"halal", model.CategorySpecialty},
}

var storageByCategory = map[model.Category]model.StorageLocation{
	model.CategoryDairy:      model.StorageRefrigerator,
	model.CategoryMeat:       model.StorageFreezer,
	model.CategoryVegetables: model.StorageRefrigerator,
	model.CategoryFruits:     model.StorageRefrigerator,
	model.CategoryBakery:     model.StoragePantry,
	model.CategoryGrains:     model.StoragePantry,
	model.CategorySnacks:     model.StoragePantry,
	model.CategoryBeverages:  model.StorageRefrigerator,
	model.CategoryCondiments: model.StorageRefrigerator,
	model.CategorySpices:     model.StoragePantry,
	model.CategoryFrozen:     model.StorageFreezer,
	model.CategoryCanned:     model.StoragePantry,
	model.CategoryPantry:     model.StoragePantry,
	model.CategoryDesserts:   model.StorageFreezer,
	model.CategorySoups:      model.StoragePantry,
	model.CategoryPrepared:   model.StorageRefrigerator,
	model.CategoryOrganic:    model.StorageRefrigerator,
	model.CategorySpecialty:  model.StoragePantry,
	model.CategoryOther:      model.StoragePantry,
}

// MapCategory normalizes free-text source categories into a Category.
func MapCategory(raw string) model.Category {
	lower := strings.ToLower(raw)
	for _, r := range categoryRules {
		if strings.Contains(lower, r.key) {
			return r.category
		}
	}
	return model.CategoryOther
}

// StorageFor returns the storage location of a category, pantry when unmapped.
func StorageFor(c model.Category) model.StorageLocation {
	if s, ok := storageByCategory[c]; ok {
		return s
	}
	return model.StoragePantry
}

// Categories lists the categories offered as search filters.
func Categories() []model.Category {
	return []model.Category{
		model.CategoryDairy, model.CategoryMeat, model.CategoryVegetables, model.CategoryFruits,
		model.CategoryBakery, model.CategoryGrains, model.CategorySnacks, model.CategoryBeverages,
		model.CategoryCondiments, model.CategorySpices, model.CategoryFrozen, model.CategoryCanned,
		model.CategoryPantry, model.CategoryDesserts, model.CategorySoups, model.CategoryPrepared,
		model.CategoryOrganic, model.CategorySpecialty,
	}
}

// StorageLocations lists every storage location.
func StorageLocations() []model.StorageLocation {
	return []model.StorageLocation{model.StorageRefrigerator, model.StorageFreezer, model.StoragePantry}
}
