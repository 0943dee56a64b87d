package dialect

import "strings"

// DatePartMapping maps date part abbreviations to their canonical names.
// Keys are upper case.
var DatePartMapping = map[string]string{
	"Y":     "YEAR",
	"YY":    "YEAR",
	"YYY":   "YEAR",
	"YYYY":  "YEAR",
	"YR":    "YEAR",
	"YEARS": "YEAR",
	"YRS":   "YEAR",

	"MM":     "MONTH",
	"MON":    "MONTH",
	"MONS":   "MONTH",
	"MONTHS": "MONTH",

	"D":          "DAY",
	"DD":         "DAY",
	"DAYS":       "DAY",
	"DAYOFMONTH": "DAY",

	"DAY OF WEEK": "DAYOFWEEK",
	"WEEKDAY":     "DAYOFWEEK",
	"DOW":         "DAYOFWEEK",
	"DW":          "DAYOFWEEK",
	"WEEKDAY_ISO": "DAYOFWEEKISO",
	"DOW_ISO":     "DAYOFWEEKISO",
	"DW_ISO":      "DAYOFWEEKISO",

	"DAY OF YEAR": "DAYOFYEAR",
	"DOY":         "DAYOFYEAR",
	"DY":          "DAYOFYEAR",

	"W":          "WEEK",
	"WK":         "WEEK",
	"WEEKOFYEAR": "WEEK",
	"WOY":        "WEEK",
	"WY":         "WEEK",
	"WW":         "WEEK",
	"WEEKS":      "WEEK",

	"WEEK_ISO":      "WEEKISO",
	"ISO_WEEK":      "WEEKISO",
	"ISOWK":         "WEEKISO",
	"ISOWW":         "WEEKISO",
	"WEEKOFYEARISO": "WEEKISO",

	"Q":        "QUARTER",
	"QQ":       "QUARTER",
	"QTR":      "QUARTER",
	"QTRS":     "QUARTER",
	"QUARTERS": "QUARTER",

	"H":     "HOUR",
	"HH":    "HOUR",
	"HR":    "HOUR",
	"HOURS": "HOUR",
	"HRS":   "HOUR",

	"M":       "MINUTE",
	"MI":      "MINUTE",
	"N":       "MINUTE",
	"MIN":     "MINUTE",
	"MINUTES": "MINUTE",
	"MINS":    "MINUTE",

	"S":       "SECOND",
	"SS":      "SECOND",
	"SEC":     "SECOND",
	"SECONDS": "SECOND",
	"SECS":    "SECOND",

	"MS":           "MILLISECOND",
	"MSEC":         "MILLISECOND",
	"MSECS":        "MILLISECOND",
	"MSECOND":      "MILLISECOND",
	"MSECONDS":     "MILLISECOND",
	"MILLISEC":     "MILLISECOND",
	"MILLISECS":    "MILLISECOND",
	"MILLISECON":   "MILLISECOND",
	"MILLISECONDS": "MILLISECOND",

	"US":           "MICROSECOND",
	"USEC":         "MICROSECOND",
	"MCS":          "MICROSECOND",
	"USECS":        "MICROSECOND",
	"MICROSEC":     "MICROSECOND",
	"MICROSECS":    "MICROSECOND",
	"USECOND":      "MICROSECOND",
	"USECONDS":     "MICROSECOND",
	"MICROSECONDS": "MICROSECOND",

	"NS":          "NANOSECOND",
	"NSEC":        "NANOSECOND",
	"NANOSEC":     "NANOSECOND",
	"NSECOND":     "NANOSECOND",
	"NSECONDS":    "NANOSECOND",
	"NANOSECS":    "NANOSECOND",
	"NANOSECONDS": "NANOSECOND",

	"EPOCH_SECOND":  "EPOCH",
	"EPOCH_SECONDS": "EPOCH",
	"EPOCH_MS":      "EPOCH_MILLISECOND",
	"EPOCH_US":      "EPOCH_MICROSECOND",
	"EPOCH_NS":      "EPOCH_NANOSECOND",

	"DEC":     "DECADE",
	"DECS":    "DECADE",
	"DECADES": "DECADE",

	"MIL":       "MILLENIUM",
	"MILS":      "MILLENIUM",
	"MILLENIA":  "MILLENIUM",
	"MILLENNIA": "MILLENIUM",

	"C":         "CENTURY",
	"CENT":      "CENTURY",
	"CENTS":     "CENTURY",
	"CENTURIES": "CENTURY",

	"TZH": "TIMEZONE_HOUR",
	"TZM": "TIMEZONE_MINUTE",
}

// NormalizeDatePart returns the canonical, upper-case name of a date part.
// Unknown parts are upper-cased.
func NormalizeDatePart(part string) string {
	upper := strings.ToUpper(strings.TrimSpace(part))
	if canonical, ok := DatePartMapping[upper]; ok {
		return canonical
	}
	return upper
}

var canonicalDateParts = func() map[string]bool {
	m := make(map[string]bool, len(DatePartMapping))
	for _, canonical := range DatePartMapping {
		m[canonical] = true
	}
	return m
}()

// IsDatePart reports whether part names a date part, either by its
// canonical name or a known abbreviation.
func IsDatePart(part string) bool {
	upper := strings.ToUpper(strings.TrimSpace(part))
	if _, ok := DatePartMapping[upper]; ok {
		return true
	}
	return canonicalDateParts[upper]
}
