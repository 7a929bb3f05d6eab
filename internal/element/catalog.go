package element

// Catalog entries use typical rental-furniture sizes. Round table diameters
// and banquet table sizes follow the common 60"/72" and 6'/8' stock converted
// to meters.

// RoundTable returns the 10-seat round guest table.
func RoundTable() Definition {
	return Definition{
		ID:       "table-round",
		Name:     "Round Table",
		Shape:    ShapeCircle,
		Dims:     Diameter(1.8),
		Capacity: 10,
	}
}

// BanquetTable returns the rectangular 8-seat banquet table.
func BanquetTable() Definition {
	return Definition{
		ID:       "table-banquet",
		Name:     "Banquet Table",
		Shape:    ShapeRect,
		Dims:     Fixed(2.4, 0.76),
		Capacity: 8,
	}
}

// CocktailTable returns the standing cocktail table.
func CocktailTable() Definition {
	return Definition{
		ID:    "table-cocktail",
		Name:  "Cocktail Table",
		Shape: ShapeCircle,
		Dims:  Diameter(0.8),
	}
}

// DanceFloor returns the modular dance floor, built from 1m x 1m panels.
func DanceFloor() Definition {
	return Definition{
		ID:    "dance-floor",
		Name:  "Dance Floor",
		Shape: ShapeRect,
		Dims:  Configurable(1.0, 6, 6, 2, 20),
	}
}

// Stage returns the modular stage, built from 2m x 1m decks.
func Stage() Definition {
	return Definition{
		ID:    "stage",
		Name:  "Stage",
		Shape: ShapeRect,
		Dims:  Configurable(1.0, 6, 4, 2, 16),
	}
}

// Bar returns the straight bar counter.
func Bar() Definition {
	return Definition{
		ID:    "bar",
		Name:  "Bar",
		Shape: ShapeRect,
		Dims:  Fixed(3.0, 0.9),
	}
}

// Catalog returns every built-in element definition in display order.
func Catalog() []Definition {
	return []Definition{
		RoundTable(),
		BanquetTable(),
		CocktailTable(),
		DanceFloor(),
		Stage(),
		Bar(),
	}
}

// ByID looks up a catalog definition. The second return is false for an
// unknown ID.
func ByID(id string) (Definition, bool) {
	for _, def := range Catalog() {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
