package extract

// postProcess identifies the normalization applied to a field's resolved
// value.
type postProcess int

const (
	postNone postProcess = iota
	postDate
	postDecimal
	postInteger
	postCurrency
)

// fieldSpec describes how one output field is resolved: table-key variants
// tried first (exact normalized match, or "re:" regex match against stored
// keys), then full-text patterns, then a post-processor. The order of both
// lists is load-bearing; entries are written most-specific-first.
type fieldSpec struct {
	name     string
	keys     []string
	patterns []string
	post     postProcess
}

// fieldSpecs drives the plain resolution chain for every field that needs no
// extra rejection or derivation logic. Fields with field-specific policies
// (shipping_bill_no, invoice_number, consignee_address, hs_code, sku,
// egm_number and the derived fields) are resolved in engine.go and
// correct.go.
var fieldSpecs = []fieldSpec{
	{
		name:     "filling_date",
		keys:     []string{"FillingDate", "Filling Date"},
		patterns: []string{`Fill(?:ing)?\s*Date\s*[:\|]?\s*([\d/\-\.]+)`},
		post:     postDate,
	},
	{
		name:     "date_of_departure",
		keys:     []string{"DateofDeparture", "Date of Departure"},
		patterns: []string{`Date\s*of\s*Departure\s*[:\|]?\s*([\d/\-\.]+)`},
		post:     postDate,
	},
	{
		name:     "egm_date",
		keys:     []string{"EGMDate", "EGM Date"},
		patterns: []string{`EGM\s*Date\s*[:\|]?\s*([\d/\-\.]+)`},
		post:     postDate,
	},
	{
		name:     "leo_date",
		keys:     []string{"LEODATE", "LEO DATE"},
		patterns: []string{`LEO\s*DATE?\s*[:\|]?\s*([\d/\-\.]+)`},
		post:     postDate,
	},
	{
		name:     "invoice_date",
		keys:     []string{"InvoiceDate", "Invoice Date"},
		patterns: []string{`Invoice\s*Date\s*[:\|]?\s*([\d/\-\.]+)`},
		post:     postDate,
	},
	{
		name:     "invoice_value_inr",
		keys:     []string{"InvoiceValue(inINR)", "Invoice Value (in INR)", "re:invoicevalue.*inr"},
		patterns: []string{`Invoice\s*Value\s*\(?in\s*INR\)?\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "hawb_number",
		keys:     []string{"HAWBNumber", "HAWB Number"},
		patterns: []string{`HAWB\s*Number\s*[:\|]?\s*(\d{8,15})`},
	},
	{
		name:     "fob_value_inr",
		keys:     []string{"FOBValue(InINR)", "FOB Value (In INR)", "re:fobvalue.*inr"},
		patterns: []string{`FOB\s*Value\s*\(?In\s*INR\)?\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "fob_value_fc",
		keys:     []string{"FOBValue(InForeignCurrency)", "re:fobvalue.*foreigncur"},
		patterns: []string{`FOB\s*Value\s*\(?In\s*Foreign[^:]*\)?\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "fob_currency",
		keys:     []string{"FOBCurrency(InForeignCurrency)", "re:fobcurrency"},
		patterns: []string{`FOB\s*Currency[^:]*[:\|]?\s*([A-Z]{3})`},
		post:     postCurrency,
	},
	{
		name:     "fob_exchange_rate",
		keys:     []string{"FOBExchangeRate(InForeignCurrency)", "re:fobexchangerate"},
		patterns: []string{`FOB\s*Exchange\s*Rate[^:]*[:\|]?\s*([\d\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "unit_price",
		keys:     []string{"UnitPrice", "Unit Price"},
		patterns: []string{`Unit\s*Price\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "unit_price_currency",
		keys:     []string{"UnitPriceCurrency", "Unit Price Currency"},
		patterns: []string{`Unit\s*Price\s*Currency\s*[:\|]?\s*([A-Z]{3})`},
		post:     postCurrency,
	},
	{
		name: "total_item_value",
		keys: []string{"TotalItemValue", "Total Item Value"},
		// The "(In INR)" variant cannot match here: the parenthesis blocks
		// the numeric capture, so only the bare label is picked up.
		patterns: []string{`Total\s*Item\s*Value\b\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "total_item_value_inr",
		keys:     []string{"TotalItemValue(InINR)", "re:totalitemvalue.*inr"},
		patterns: []string{`Total\s*Item\s*Value\s*\(?In\s*INR\)?\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "total_taxable_value",
		keys:     []string{"TotalTaxableValue", "Total Taxable Value"},
		patterns: []string{`Total\s*Taxable\s*Value\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "total_igst_paid",
		keys:     []string{"TotalIGSTPaid", "Total IGST Paid"},
		patterns: []string{`Total\s*IGST\s*Paid\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "total_cess_paid",
		keys:     []string{"TotalCESSPaid", "Total CESS Paid"},
		patterns: []string{`Total\s*CESS\s*Paid\s*[:\|]?\s*([\d,\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "exchange_rate",
		keys:     []string{"ExchangeRate", "Exchange Rate"},
		patterns: []string{`\bExchange\s*Rate\s*[:\|]?\s*([\d\.]+)`},
		post:     postDecimal,
	},
	{
		name:     "exporter_name",
		keys:     []string{"NameoftheConsignor", "Name of the Consignor"},
		patterns: []string{`Name\s*of\s*(?:the\s*)?Consignor\s*[:\|]?\s*([^\n]{5,150})`},
	},
	{
		name:     "exporter_address",
		keys:     []string{"AddressoftheConsignor", "Address of the Consignor"},
		patterns: []string{`Address\s*of\s*(?:the\s*)?Consignor\s*[:\|]?\s*([^\n]{10,300})`},
	},
	{
		name:     "consignee_name",
		keys:     []string{"NameoftheConsignee", "Name of the Consignee"},
		patterns: []string{`Name\s*of\s*(?:the\s*)?Consignee\s*[:\|]?\s*([^\n]{2,150})`},
	},
	{
		name:     "port_of_loading",
		keys:     []string{"PortofLoading", "Port of Loading"},
		patterns: []string{`Port\s*of\s*Loading\s*[:\|]?\s*([A-Z0-9]{2,10})`},
	},
	{
		name:     "port_of_discharge",
		keys:     []string{"AirportofDestination", "Airport of Destination", "PortofDischarge", "Port of Discharge"},
		patterns: []string{`Airport\s*of\s*Destination\s*[:\|]?\s*([A-Z0-9]{2,10})`},
	},
	{
		name:     "custom_station",
		keys:     []string{"CustomStationName", "Custom Station Name"},
		patterns: []string{`Custom\s*Station\s*Name\s*[:\|]?\s*([A-Z0-9]{2,10})`},
	},
	{
		name:     "total_packages",
		keys:     []string{"NumberofPackagesPiecesBagsULD", "re:numberofpackages"},
		patterns: []string{`Number\s*of\s*Packages[^:]*[:\|]?\s*(\d+)`},
		post:     postInteger,
	},
	{
		name:     "quantity",
		keys:     []string{"Quantity"},
		patterns: []string{`\bQuantity\s*[:\|]?\s*(\d+)`},
		post:     postInteger,
	},
	{
		name:     "unit_of_measure",
		keys:     []string{"UnitOfMeasure", "Unit Of Measure"},
		patterns: []string{`Unit\s*Of\s*Measure\s*[:\|]?\s*([A-Z]{2,10})`},
	},
	{
		name:     "gross_weight",
		keys:     []string{"DeclaredWeight(inKgs)", "Declared Weight(in Kgs)"},
		patterns: []string{`Declared\s*Weight[^:]*[:\|]?\s*([\d\.]+)`},
	},
	{
		name:     "item_description",
		keys:     []string{"GoodsDescription", "Goods Description"},
		patterns: []string{`Goods\s*Description\s*[:\|]?\s*([^\n]{3,200})`},
	},
	{
		name:     "iec_code",
		keys:     []string{"ImportExportCode(IEC)", "re:importexportcode"},
		patterns: []string{`Import\s*Export\s*Code\s*\(?IEC\)?\s*[:\|]?\s*([A-Z0-9]{10})`},
	},
	{
		name:     "iec_branch_code",
		keys:     []string{"IECBranchCode", "IEC Branch Code"},
		patterns: []string{`IEC\s*Branch\s*Code\s*[:\|]?\s*(\d+)`},
	},
	{
		name:     "ad_code",
		keys:     []string{"ADCode", "AD Code"},
		patterns: []string{`AD\s*Code\s*[:\|]?\s*(\d{5,10})`},
	},
	{
		name:     "account_no",
		keys:     []string{"AccountNo", "Account No"},
		patterns: []string{`Account\s*No\s*[:\|]?\s*(\d{8,18})`},
	},
	{
		name: "gstin",
		keys: []string{"KYCID", "KYC ID", "GSTIN"},
		patterns: []string{
			`KYC\s*ID\s*[:\|]?\s*([A-Z0-9]{15})`,
			`GSTIN\s*[:\|]?\s*([A-Z0-9]{15})`,
		},
	},
	{
		name:     "kyc_document",
		keys:     []string{"KYCDocument", "KYC Document"},
		patterns: []string{`KYC\s*Document\s*[:\|]?\s*([^\n]{3,50})`},
	},
	{
		name:     "state_code",
		keys:     []string{"StateCode", "State Code"},
		patterns: []string{`State\s*Code\s*[:\|]?\s*(\d{1,2})`},
	},
	{
		name:     "mhbs_no",
		keys:     []string{"MHBSNo", "MHBS No"},
		patterns: []string{`MHBS\s*No\s*[:\|]?\s*([A-Z0-9\-]+)`},
	},
	{
		name:     "status",
		keys:     []string{"Status"},
		patterns: []string{`\bStatus\s*[:\|]?\s*(EXPCLOSED|EXPOPEN|[A-Z]{4,12})`},
	},
	{
		name:     "under_meis_scheme",
		keys:     []string{"UnderMEISScheme", "Under MEIS Scheme"},
		patterns: []string{`Under\s*MEIS\s*Scheme\s*[:\|]?\s*([A-Z]+)`},
	},
	{
		name:     "nfei",
		keys:     []string{"NFEI"},
		patterns: []string{`\bNFEI\s*[:\|]?\s*([A-Z]+)`},
	},
	{
		name:     "government_nongovernment",
		keys:     []string{"GovernmentNonGovernment", "re:governmentnongovernment"},
		patterns: []string{`(?:Government/Non-Government)\s*[:\|]?\s*(NON-GOVERNMENT|GOVERNMENT)`},
	},
	{
		name:     "export_using_ecommerce",
		keys:     []string{"ExportUsinge-Commerce", "Export Using e-Commerce"},
		patterns: []string{`Export\s*Using\s*e.Commerce\s*[:\|]?\s*([YN])`},
	},
	{
		name:     "bond_or_ut",
		keys:     []string{"BONDORUT", "BOND OR UT"},
		patterns: []string{`BOND\s*OR\s*UT\s*[:\|]?\s*([A-Z]+)`},
	},
	{
		name:     "courier_name",
		keys:     []string{"CourierName", "Courier Name"},
		patterns: []string{`Courier\s*Name\s*[:\|]?\s*([^\n]{3,80})`},
	},
	{
		name:     "courier_reg_no",
		keys:     []string{"CourierRegistrationNumber", "re:courierregistrationnumber"},
		patterns: []string{`Courier\s*Registration\s*Num[^\s:]*\s*[:\|]?\s*([A-Z0-9]+)`},
	},
	{
		name:     "airline",
		keys:     []string{"Airlines", "Airline"},
		patterns: []string{`Airlines?\s*[:\|]?\s*([A-Z][A-Z\s]+?)(?:\s+Flight|\s+Port|\n)`},
	},
	{
		name:     "flight_number",
		keys:     []string{"FlightNumber", "Flight Number"},
		patterns: []string{`Flight\s*Number\s*[:\|]?\s*([A-Z0-9\s]{2,12})`},
	},
}
