package search

import "github.com/Humanoid-1/Web-backend/internal/domain"

// Query parameter names shared by the catalog schemas.
const (
	ParamBrand     = "brand"
	ParamCategory  = "category"
	ParamType      = "type"
	ParamCPU       = "cpu"
	ParamRAM       = "ram"
	ParamStorage   = "storage"
	ParamMinPrice  = "minPrice"
	ParamMaxPrice  = "maxPrice"
	ParamMinRating = "minRating"
	ParamMaxRating = "maxRating"
	ParamInStock   = "inStock"
)

// Field names double as column names in the postgres store.

// LaptopSchema scores one point per keyword for each of model, cpu and ram.
var LaptopSchema = MustSchema(SchemaConfig[domain.Laptop]{
	Entity: domain.EntityLaptop,
	Fields: []Field[domain.Laptop]{
		ScalarField("brand", func(l domain.Laptop) string { return l.Brand }),
		ScalarField("model", func(l domain.Laptop) string { return l.Model }),
		ScalarField("category", func(l domain.Laptop) string { return l.Category }),
		ScalarField("cpu", func(l domain.Laptop) string { return l.CPU }),
		ScalarField("ram", func(l domain.Laptop) string { return l.RAM }),
		ScalarField("storage", func(l domain.Laptop) string { return l.Storage }),
		ScalarField("description", func(l domain.Laptop) string { return l.Description }),
		ListField("features", func(l domain.Laptop) []string { return l.Features }),
		NumberField("price", func(l domain.Laptop) float64 { return l.Price }),
		NumberField("ratings", func(l domain.Laptop) float64 { return l.Ratings }),
	},
	Text: []string{"brand", "model", "description", "cpu", "ram"},
	Weights: []Weight{
		{Field: "model", Weight: 1},
		{Field: "cpu", Weight: 1},
		{Field: "ram", Weight: 1},
	},
	Params: []Param{
		{Name: ParamBrand, Field: "brand", Kind: ParamAnyOf},
		{Name: ParamCategory, Field: "category", Kind: ParamAnyOf},
		{Name: ParamCPU, Field: "cpu", Kind: ParamAnyOf},
		{Name: ParamRAM, Field: "ram", Kind: ParamAnyOf},
		{Name: ParamStorage, Field: "storage", Kind: ParamAnyOf},
		{Name: ParamMinPrice, Field: "price", Kind: ParamMin},
		{Name: ParamMaxPrice, Field: "price", Kind: ParamMax},
		{Name: ParamMinRating, Field: "ratings", Kind: ParamMin},
		{Name: ParamMaxRating, Field: "ratings", Kind: ParamMax},
	},
})

// AccessorySchema weighs brand 5, category 4, type 3, model 2 and feature
// membership 1.
var AccessorySchema = MustSchema(SchemaConfig[domain.Accessory]{
	Entity: domain.EntityAccessory,
	Fields: []Field[domain.Accessory]{
		ScalarField("name", func(a domain.Accessory) string { return a.Name }),
		ScalarField("brand", func(a domain.Accessory) string { return a.Brand }),
		ScalarField("category", func(a domain.Accessory) string { return a.Category }),
		ScalarField("type", func(a domain.Accessory) string { return a.Type }),
		ScalarField("model", func(a domain.Accessory) string { return a.Model }),
		ListField("features", func(a domain.Accessory) []string { return a.Features }),
		NumberField("price", func(a domain.Accessory) float64 { return a.Price }),
		FlagField("in_stock", func(a domain.Accessory) bool { return a.InStock }),
	},
	Text: []string{"name", "brand", "model", "type", "category", "features"},
	Weights: []Weight{
		{Field: "brand", Weight: 5},
		{Field: "category", Weight: 4},
		{Field: "type", Weight: 3},
		{Field: "model", Weight: 2},
		{Field: "features", Weight: 1},
	},
	Params: []Param{
		{Name: ParamBrand, Field: "brand", Kind: ParamAnyOf},
		{Name: ParamCategory, Field: "category", Kind: ParamAnyOf},
		{Name: ParamType, Field: "type", Kind: ParamAnyOf},
		{Name: ParamMinPrice, Field: "price", Kind: ParamMin},
		{Name: ParamMaxPrice, Field: "price", Kind: ParamMax},
		{Name: ParamInStock, Field: "in_stock", Kind: ParamFlag},
	},
})

// PartSchema scores one point per keyword for each matching field.
var PartSchema = MustSchema(SchemaConfig[domain.Part]{
	Entity: domain.EntityPart,
	Fields: []Field[domain.Part]{
		ScalarField("name", func(p domain.Part) string { return p.Name }),
		ScalarField("category", func(p domain.Part) string { return p.Category }),
		ScalarField("brand", func(p domain.Part) string { return p.Brand }),
		ScalarField("ram", func(p domain.Part) string { return p.RAM }),
		ScalarField("processor", func(p domain.Part) string { return p.Processor }),
		NumberField("price", func(p domain.Part) float64 { return p.Price }),
		NumberField("stock", func(p domain.Part) float64 { return float64(p.Stock) }),
	},
	Text: []string{"name", "category", "brand", "ram", "processor"},
	Weights: []Weight{
		{Field: "name", Weight: 1},
		{Field: "brand", Weight: 1},
		{Field: "category", Weight: 1},
		{Field: "ram", Weight: 1},
		{Field: "processor", Weight: 1},
	},
	Params: []Param{
		{Name: ParamBrand, Field: "brand", Kind: ParamAnyOf},
		{Name: ParamCategory, Field: "category", Kind: ParamAnyOf},
		{Name: ParamMinPrice, Field: "price", Kind: ParamMin},
		{Name: ParamMaxPrice, Field: "price", Kind: ParamMax},
	},
})
