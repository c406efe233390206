package feed

import (
	"strings"

	"supermarkt/models"
)

type meta struct {
	name string
	icon string
}

var supermarketMeta = map[string]meta{
	"ah":        {"Albert Heijn", "🟦"},
	"jumbo":     {"Jumbo", "🟨"},
	"aldi":      {"Aldi", "🟧"},
	"lidl":      {"Lidl", "🟦"},
	"plus":      {"Plus", "🟩"},
	"deka":      {"DekaMarkt", "🟥"},
	"vomar":     {"Vomar", "🟧"},
	"dirk":      {"Dirk", "🟥"},
	"coop":      {"Coop", "🟩"},
	"hoogvliet": {"Hoogvliet", "🟧"},
	"spar":      {"Spar", "🟩"},
	"picnic":    {"Picnic", "🟨"},
}

const defaultIcon = "🏪"

// Supermarket returns display data for a store code. Unknown codes get a
// title-cased name and a generic icon.
func Supermarket(code string) models.Supermarket {
	if m, ok := supermarketMeta[code]; ok {
		return models.Supermarket{Code: code, Name: m.name, Icon: m.icon}
	}
	name := code
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return models.Supermarket{Code: code, Name: name, Icon: defaultIcon}
}
