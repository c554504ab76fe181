package reconcile

// aliases maps folded short names (FBref, press usage) to folded full names.
var aliases = map[string]string{
	"man city":             "manchester city",
	"man utd":              "manchester united",
	"man united":           "manchester united",
	"manchester utd":       "manchester united",
	"newcastle":            "newcastle united",
	"newcastle utd":        "newcastle united",
	"nottham forest":       "nottingham forest",
	"nottm forest":         "nottingham forest",
	"notts forest":         "nottingham forest",
	"sheffield utd":        "sheffield united",
	"leeds":                "leeds united",
	"leeds utd":            "leeds united",
	"west brom":            "west bromwich albion",
	"west bromwich":        "west bromwich albion",
	"west ham":             "west ham united",
	"wolves":               "wolverhampton wanderers",
	"wolverhampton":        "wolverhampton wanderers",
	"spurs":                "tottenham hotspur",
	"tottenham":            "tottenham hotspur",
	"brighton":             "brighton and hove albion",
	"brighton hove albion": "brighton and hove albion",
	"huddersfield":         "huddersfield town",
	"qpr":                  "queens park rangers",
	"hull":                 "hull city",
	"cardiff":              "cardiff city",
	"stoke":                "stoke city",
	"swansea":              "swansea city",
	"norwich":              "norwich city",
	"leicester":            "leicester city",
	"luton":                "luton town",
	"ipswich":              "ipswich town",
}
