// Package dataset holds the typed records a chart draws and the loaders that
// produce them from tabular sources.
//
// A [Dataset] is an ordered, immutable sequence of [Record] values that all
// share one [Shape]. The shape decides which record fields are meaningful:
//
//	series: Category, X, Y            (one line per category, X is time)
//	bubble: Category, Group, X, Y, Size
//	tile:   Category, Group, Y [, Size]
//
// # Loading
//
// A [Schema] maps each field to a raw column name. [FileLoader] reads CSV
// (encoding/csv) or XLSX (excelize) sources, extracts fields through the
// schema, and drops rows whose required fields fail to parse. Dropped rows
// are counted in [Dataset.Dropped] and never reported one by one. Sources
// that cannot be opened or have no header fail with an errors.ErrCodeLoad
// error.
//
//	loader := dataset.NewFileLoader(dataset.Schema{
//	    Shape: dataset.ShapeSeries,
//	    Fields: map[dataset.Field]string{
//	        dataset.FieldCategory: "Entity",
//	        dataset.FieldX:        "Year",
//	        dataset.FieldY:        "public_health_expenditure_pc_gdp",
//	    },
//	}, logger)
//	ds, err := loader.Load(ctx, "data/full-gdp.csv")
package dataset
