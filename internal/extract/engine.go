package extract

import (
	"regexp"
	"strings"
)

// Table is a grid of cells as produced by the document decoder. Rows may be
// ragged; missing cells are empty strings.
type Table [][]string

// Page is one decoded document page: its plain text (possibly empty) and any
// table grids found on it.
type Page struct {
	Text   string
	Tables []Table
}

// Document is the ephemeral decoded input: pages in order. It is processed
// once and discarded.
type Document struct {
	Pages []Page
}

// Record maps field names to resolved values. Values are strings except for
// the one list-valued field (crn_mhbs_numbers). Absent fields are simply not
// present; a key is never stored with an empty value.
type Record map[string]any

var (
	dateShapedRe     = regexp.MustCompile(`^[\d/\-\.]+$`)
	labelResidueRe   = regexp.MustCompile(`(?i)(invoicedate|invoicevalue|date|value)`)
	hsDigitRunRe     = regexp.MustCompile(`\d{4,10}`)
	digitsOnlyRe     = regexp.MustCompile(`^\d+$`)
	yesNoRe          = regexp.MustCompile(`(?i)^(YES|NO|Y|N|NA)$`)
	digitOrCommaRe   = regexp.MustCompile(`[\d,]`)
	invoiceTokenScan = `\b([A-Za-z]{2,8}[-/]\d{6,12})\b`
)

// Engine resolves the full field set for one document. It is pure and
// self-contained: safe to run many engines concurrently, one per document.
type Engine struct {
	index    *Index
	searcher *Searcher
	tables   []Table
	fullText string
}

// NewEngine builds the full text and key-value index for a decoded document.
func NewEngine(doc Document) *Engine {
	var sb strings.Builder
	var tables []Table
	for _, page := range doc.Pages {
		sb.WriteString(page.Text)
		sb.WriteString("\n")
		tables = append(tables, page.Tables...)
	}
	fullText := sb.String()

	return &Engine{
		index:    BuildIndex(tables),
		searcher: NewSearcher(fullText),
		tables:   tables,
		fullText: fullText,
	}
}

// Extract resolves every output field and returns the record with absent
// fields omitted. Resolution never fails: a field that cannot be resolved is
// simply missing from the result.
func (e *Engine) Extract() Record {
	rec := Record{}

	e.resolveShippingBillNo(rec)

	for _, spec := range fieldSpecs {
		if val := e.get(spec); val != "" {
			rec[spec.name] = val
		}
	}

	e.resolveInvoiceNumber(rec)
	e.resolveConsigneeAddress(rec)
	e.resolveHSCode(rec)
	e.resolveSKU(rec)
	e.resolveEGMNumber(rec)

	applyCorrections(rec, e)

	return rec
}

// get runs the plain resolution chain for a spec: table lookup, then text
// search, then the post-processor.
func (e *Engine) get(spec fieldSpec) string {
	val := e.index.Lookup(spec.keys...)
	if val == "" && len(spec.patterns) > 0 {
		val = e.searcher.SearchText(spec.patterns...)
	}
	if val == "" {
		return ""
	}
	switch spec.post {
	case postDate:
		return ParseDate(val)
	case postDecimal:
		return ToDecimal(val)
	case postInteger:
		return FirstInteger(val)
	case postCurrency:
		return truncateCurrency(val)
	}
	return val
}

// truncateCurrency clips a currency value to its first three characters,
// uppercased. A form field with trailing text still yields a conformant code.
func truncateCurrency(val string) string {
	r := []rune(val)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// resolveShippingBillNo resolves the CSB number and strips all internal
// whitespace, since the grid often splits the number across cells.
func (e *Engine) resolveShippingBillNo(rec Record) {
	csb := e.index.Lookup("CSBNumber", "CSB Number")
	if csb == "" {
		csb = e.searcher.SearchText(`CSB\s*Number\s*[:\|]?\s*([A-Z0-9_\-/\s]+?)(?:\s+Filling|\s*\n)`)
	}
	if csb != "" {
		rec["shipping_bill_no"] = whitespaceRe.ReplaceAllString(csb, "")
	}
}

// resolveInvoiceNumber applies the invoice-number rejection rules: a labeled
// lookup that is purely numeric with separators is a mis-captured date, and
// one containing label words is mis-captured header text. Only when the
// labeled chain fails entirely does it fall back to scanning the whole text
// for an identifier-shaped token.
func (e *Engine) resolveInvoiceNumber(rec Record) {
	inv := e.index.Lookup("InvoiceNumber", "Invoice Number", "InvoiceNo", "Invoice No")
	if inv != "" && dateShapedRe.MatchString(inv) {
		inv = ""
	}
	if inv != "" && labelResidueRe.MatchString(inv) {
		inv = ""
	}
	if inv == "" {
		inv = e.searcher.SearchText(
			`InvoiceNumber:\s*\n?\s*([A-Za-z][A-Za-z0-9/\-]{3,20})`,
			`Invoice\s*(?:Number|No\.?)\s*[:\|]?\s*([A-Za-z][A-Za-z0-9/\-]{3,20})`,
		)
	}
	if inv == "" {
		if candidates := e.searcher.SearchAllText(invoiceTokenScan); len(candidates) > 0 {
			inv = candidates[0]
		}
	}
	if inv != "" {
		rec["invoice_number"] = inv
	}
}

// resolveConsigneeAddress resolves the consignee address; a result with no
// digits or commas is a truncated grid cell, so the full-text capture is
// preferred in that case.
func (e *Engine) resolveConsigneeAddress(rec Record) {
	spec := fieldSpec{
		keys: []string{"AddressoftheConsignee", "Address of the Consignee", "ConsigneeAddress", "Consignee Address"},
		patterns: []string{
			`Address\s*of\s*(?:the\s*)?Consignee\s*[:\|]?\s*([^\n]{10,300})`,
			`Consignee\s*Address\s*[:\|]?\s*([^\n]{10,300})`,
		},
	}
	ca := e.get(spec)
	if ca != "" && !digitOrCommaRe.MatchString(ca) {
		ca = e.searcher.SearchText(spec.patterns...)
	}
	if ca != "" {
		rec["consignee_address"] = ca
	}
}

// resolveHSCode resolves the CTSH tariff heading and strips surrounding
// non-digit noise down to the embedded 4-10 digit run.
func (e *Engine) resolveHSCode(rec Record) {
	hs := e.get(fieldSpec{
		keys:     []string{"CTSH"},
		patterns: []string{`CTSH\s*[:\|]?\s*(\d{4,10})`},
	})
	if hs == "" {
		return
	}
	if run := hsDigitRunRe.FindString(hs); run != "" {
		hs = run
	}
	rec["hs_code"] = hs
}

// resolveSKU resolves the SKU number, rejecting yes/no flag values captured
// from the adjacent checkbox column.
func (e *Engine) resolveSKU(rec Record) {
	sku := e.get(fieldSpec{
		keys:     []string{"(ii)SKUNO", "SKUNO", "SKU"},
		patterns: []string{`SKU\s*(?:NO|Number)?\s*[:\|]?\s*([A-Za-z0-9][A-Za-z0-9\-/]{1,30})`},
	})
	if sku == "" || yesNoRe.MatchString(sku) {
		return
	}
	rec["sku"] = sku
}

// resolveEGMNumber resolves the EGM number; a non-numeric table candidate is
// unreliable, so the text is re-searched strictly for a standalone digit run.
func (e *Engine) resolveEGMNumber(rec Record) {
	egm := e.get(fieldSpec{
		keys:     []string{"EGMNumber", "EGM Number"},
		patterns: []string{`EGM\s*Number\s*[:\|]?\s*(\d{5,12})`},
	})
	if egm != "" && !digitsOnlyRe.MatchString(egm) {
		egm = e.searcher.SearchText(`EGM\s*Number\s*[:\|]?\s*(\d{5,12})`)
	}
	if egm != "" {
		rec["egm_number"] = egm
	}
}
