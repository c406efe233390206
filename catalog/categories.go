package catalog

import (
	"sort"
	"strings"
)

// categoryKeywords maps a human category label to product-name substrings.
// Hand-maintained; labels follow the folder offer categories.
var categoryKeywords = map[string][]string{
	// drugstore
	"haarverzorging":      {"shampoo", "conditioner", "haarmasker", "haargel", "haarspray", "haarlak", "haarverf", "haarserum"},
	"huidverzorging":      {"dagcreme", "nachtcreme", "gezichtscreme", "bodylotion", "handcreme", "zonnebrand", "aftersun", "lippenbalsem", "gezichtsmasker", "scrub", "reinigingsmelk", "tonic"},
	"mondverzorging":      {"tandpasta", "tandenborstel", "tandenstokers", "mondwater", "flosdraad"},
	"lichaamsverzorging":  {"deodorant", "douchegel", "douchecreme", "handzeep", "zeep", "badschuim", "scheerschuim", "scheermesjes", "aftershave"},
	"make-up":             {"mascara", "lippenstift", "lipgloss", "foundation", "concealer", "oogschaduw", "eyeliner", "nagellak", "primer"},
	"parfum":              {"parfum", "eau de toilette", "bodyspray"},
	"baby":                {"luiers", "babydoekjes", "babyshampoo", "babycreme", "flesvoeding", "fruithapje"},
	"gezondheid":          {"vitamine", "multivitamine", "paracetamol", "ibuprofen", "neusspray", "hoestdrank", "pleister", "verband", "thermometer", "oogdruppels"},
	"hygiene":             {"maandverband", "tampons", "inlegkruisjes", "wattenschijfjes", "wattenstaafjes"},
	"huishouden":          {"wasmiddel", "wasverzachter", "afwasmiddel", "vlekkenverwijderaar", "allesreiniger", "glasreiniger", "toiletblok", "toiletpapier", "tissues"},

	// supermarket
	"vlees":  {"gehakt", "kipfilet", "kip", "biefstuk", "entrecote", "speklappen", "karbonade", "riblappen", "hamburger", "slavink", "rookworst", "braadworst", "bacon", "spek", "schnitzel", "kalkoen", "stoofvlees"},
	"vis":    {"vis", "zalm", "kabeljauw", "tonijn", "garnalen", "mosselen", "haring", "kibbeling"},
	"zuivel": {"melk", "karnemelk", "yoghurt", "kwark", "vla", "pudding", "kaas", "roomboter", "boter", "margarine", "eieren", "slagroom"},
	"brood":  {"brood", "volkoren", "croissant", "stokbrood", "beschuit", "crackers", "toast"},
	"snoep":  {"koek", "chocolade", "snoep", "drop"},
}

// Keywords expands a category label into name substrings. A known label yields
// its keyword set; any other non-empty label is used as a single substring.
// An empty label yields no filter.
func Keywords(category string) []string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return nil
	}
	if kw, ok := categoryKeywords[c]; ok {
		out := make([]string, len(kw))
		copy(out, kw)
		return out
	}
	return []string{c}
}

// Categories lists the known labels in alphabetical order.
func Categories() []string {
	out := make([]string, 0, len(categoryKeywords))
	for c := range categoryKeywords {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
