package resort

// regionByState maps every state/province appearing in the dataset to a
// coarse geographic region. The map doubles as the state/province
// enumeration used by record validation.
var regionByState = map[string]string{
	// Canada
	"Alberta":                   "Western Canada",
	"British Columbia":          "Western Canada",
	"Newfoundland and Labrador": "Eastern Canada",
	"Nova Scotia":               "Eastern Canada",
	"Ontario":                   "Eastern Canada",
	"Quebec":                    "Eastern Canada",

	// Western US
	"Alaska":     "Western US",
	"Arizona":    "Western US",
	"California": "Western US",
	"Colorado":   "Western US",
	"Idaho":      "Western US",
	"Montana":    "Western US",
	"Nevada":     "Western US",
	"New Mexico": "Western US",
	"Oregon":     "Western US",
	"Utah":       "Western US",
	"Washington": "Western US",
	"Wyoming":    "Western US",

	// Northeast US
	"Connecticut":   "Northeast US",
	"Maine":         "Northeast US",
	"Massachusetts": "Northeast US",
	"New Hampshire": "Northeast US",
	"New Jersey":    "Northeast US",
	"New York":      "Northeast US",
	"Pennsylvania":  "Northeast US",
	"Rhode Island":  "Northeast US",
	"Vermont":       "Northeast US",

	// Midwest US
	"Illinois":     "Midwest US",
	"Indiana":      "Midwest US",
	"Iowa":         "Midwest US",
	"Michigan":     "Midwest US",
	"Minnesota":    "Midwest US",
	"Missouri":     "Midwest US",
	"North Dakota": "Midwest US",
	"Ohio":         "Midwest US",
	"South Dakota": "Midwest US",
	"Wisconsin":    "Midwest US",

	// Southeast US
	"Alabama":        "Southeast US",
	"Maryland":       "Southeast US",
	"North Carolina": "Southeast US",
	"Tennessee":      "Southeast US",
	"Virginia":       "Southeast US",
	"West Virginia":  "Southeast US",
}

// Region returns the geographic region for a state/province, or "" when the
// name is not part of the enumeration.
func Region(stateProvince string) string {
	return regionByState[stateProvince]
}

// StatesProvinces returns the fixed enumeration of valid state/province
// names, in no particular order.
func StatesProvinces() []string {
	out := make([]string, 0, len(regionByState))
	for s := range regionByState {
		out = append(out, s)
	}
	return out
}
