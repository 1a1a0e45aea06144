package milesearch

// form fields of the mileage search endpoint
const (
	FieldCmd      = "cmd"
	FieldType     = "TYPE"
	FieldExternal = "external"
	FieldAreaFrom = "AreaFrom"
	FieldAreaTo   = "AreaTo"
	FieldCityFrom = "CityFrom"
	FieldCityTo   = "CityTo"
	FieldClass    = "F_CLASS"
	FieldCard     = "F_JAL_CARD"
	FieldStatus   = "F_JAL_CARD_STATUS"
	FieldFare     = "F_FARE"
)

const (
	CmdSearch         = "do_search"
	TypeDomestic      = "D"
	TypeInternational = "I"
	// Unspecified is sent for an optional card or status.
	Unspecified = "-"
)

const (
	DefaultEndpoint  = "https://www.jal.co.jp/cgi-bin/jal/milesearch/save/flt_mile_save.cgi"
	DefaultScriptUrl = "https://www.jal.co.jp/jmb/milesearch/js/mile_search_jp.js"
)

// variables of the data script
const (
	varStatuses     = "status_hash"
	varIntlAirports = "save_city_hash"
	varDomAirports  = "dom_city"
	statusGroup     = "g_club"
)

// element ids and classes of the form page
const (
	selectCards      = "#intCardtype"
	selectDomClasses = "#domClass"
	selectDomFares   = "#domFare"
	selectIntlFares  = "#intFare"
	classFeeList     = "feelist"
	domFeeList       = 0
	intlFeeList      = 1

	resultDom  = "#contentDom"
	resultIntl = "#contentInt"
)
