package config

// Default returns the built-in chart presets: the public health expenditure
// line chart, the tax revenue bubble plot, and the regional tile chart.
func Default() *Config {
	minYear := 1880.0
	return &Config{
		Charts: map[string]Chart{
			"gdp": {
				Kind:   "line",
				Source: "data/full-gdp.csv",
				Width:  800,
				Fields: map[string]string{
					"category": "Entity",
					"x":        "Year",
					"y":        "public_health_expenditure_pc_gdp",
				},
				Filters: []Filter{{Field: "x", Min: &minYear}},
			},
			"tax": {
				Kind:   "bubble",
				Source: "data/tax.csv",
				Width:  900,
				Fields: map[string]string{
					"category": "Entity",
					"group":    "World regions according to OWID",
					"x":        "Tax revenues per capita (current international $)",
					"y":        "Domestic general government health expenditure per capita, PPP (current international $)",
					"size":     "Population (historical)",
				},
			},
			"regions": {
				Kind:   "tile",
				Source: "data/processed.csv",
				Width:  800,
				Fields: map[string]string{
					"category": "Country",
					"group":    "Region",
					"y":        "HealthExpenditurePercentage",
					"size":     "Population",
				},
			},
		},
	}
}
