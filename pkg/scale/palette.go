package scale

// Category10 is the ten-color categorical scheme used for line series.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Tableau10 is the ten-color categorical scheme used for bubble continents.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Palette returns a named palette, or nil if the name is unknown.
func Palette(name string) []string {
	switch name {
	case "category10":
		return Category10
	case "tableau10":
		return Tableau10
	}
	return nil
}
