package phone

import (
	"github.com/nyaruka/phonenumbers"
)

// Normalize formats a raw phone number to E.164 using the given default
// region for numbers without a country prefix. Unparseable input is
// returned verbatim: phone numbers are contact hints, not identifiers,
// so normalization is best-effort only.
func Normalize(raw, defaultRegion string) string {
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
