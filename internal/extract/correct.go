package extract

import "strings"

// countryKeyword maps an uppercase keyword found in address text to the
// canonical country name. Matching is plain substring search without word
// boundaries, so list order is load-bearing: multi-word names and full forms
// come before abbreviations that could also appear inside them.
type countryKeyword struct {
	keyword string
	country string
}

var countryKeywords = []countryKeyword{
	{"AUSTRALIA", "Australia"},
	{"NEW ZEALAND", "New Zealand"},
	{"UNITED STATES", "United States"},
	{"USA", "United States"},
	{"CANADA", "Canada"},
	{"UNITED KINGDOM", "United Kingdom"},
	{"UK", "United Kingdom"},
	{"SINGAPORE", "Singapore"},
	{"UAE", "UAE"},
	{"GERMANY", "Germany"},
	{"FRANCE", "France"},
	{"CHINA", "China"},
	{"JAPAN", "Japan"},
	{"HONG KONG", "Hong Kong"},
	{"THAILAND", "Thailand"},
	{"MALAYSIA", "Malaysia"},
	{"NETHERLANDS", "Netherlands"},
	{"BELGIUM", "Belgium"},
	{"ITALY", "Italy"},
	{"SPAIN", "Spain"},
	{"SOUTH AFRICA", "South Africa"},
}

// Air keywords are checked before sea keywords, so a document mentioning
// both resolves to AIR.
var (
	airKeywords = []string{"flight", "airline", "airport", "hawb"}
	seaKeywords = []string{"vessel", "ship", "sea", "bill of lading"}
)

// applyCorrections runs the cross-field pass over a resolved record:
// inference of country and transport mode, derivation of CRN fields, and
// aggregation-backed fallbacks for values the scalar chain missed.
func applyCorrections(rec Record, e *Engine) {
	inferConsigneeCountry(rec)
	inferTransportMode(rec, e.fullText)
	deriveCRNFields(rec, e.searcher)
	aggregateFallbacks(rec, e.tables)
}

// inferConsigneeCountry derives the consignee country from the resolved
// address via the ordered keyword table. The address is never looked up
// directly; the country only exists as a substring of the address text.
func inferConsigneeCountry(rec Record) {
	ca, ok := rec["consignee_address"].(string)
	if !ok || ca == "" {
		return
	}
	upper := strings.ToUpper(ca)
	for _, kw := range countryKeywords {
		if strings.Contains(upper, kw.keyword) {
			rec["consignee_country"] = kw.country
			return
		}
	}
}

// inferTransportMode marks the document AIR or SEA from keyword presence in
// the lowercased full text, air checked first.
func inferTransportMode(rec Record, fullText string) {
	lower := strings.ToLower(fullText)
	for _, kw := range airKeywords {
		if strings.Contains(lower, kw) {
			rec["mode_of_transport"] = "AIR"
			return
		}
	}
	for _, kw := range seaKeywords {
		if strings.Contains(lower, kw) {
			rec["mode_of_transport"] = "SEA"
			return
		}
	}
}

// deriveCRNFields sets crn_number from the HAWB number and collects all
// ARR-prefixed reference numbers as the one list-valued output field.
func deriveCRNFields(rec Record, s *Searcher) {
	if hawb, ok := rec["hawb_number"].(string); ok && hawb != "" {
		rec["crn_number"] = hawb
	}
	if refs := s.SearchAllText(`\b(ARR-\d+)\b`); len(refs) > 0 {
		rec["crn_mhbs_numbers"] = refs
	}
}

// aggregateFallbacks fills a few numeric fields from table-column
// aggregation when the scalar resolution chain came up empty: itemized
// multi-row layouts carry the data as a column rather than a labeled cell.
func aggregateFallbacks(rec Record, tables []Table) {
	if _, ok := rec["quantity"]; !ok {
		if stats, found := AggregateColumn(tables, "quantity"); found {
			rec["quantity"] = stats.SumString()
		}
	}
	if _, ok := rec["total_item_value"]; !ok {
		if stats, found := AggregateColumnExcluding(tables, "totalitemvalue", "inr"); found {
			rec["total_item_value"] = stats.SumString()
		}
	}
}
