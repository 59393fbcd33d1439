package client

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the phone region used when none is configured.
const DefaultRegion = "US"

// FormatPhone renders a stored phone number in national format for region.
// Numbers that don't parse or aren't valid are returned unchanged; stored
// values are never rewritten.
func FormatPhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	// Numbers from another country keep their country code.
	if phonenumbers.GetRegionCodeForNumber(num) != strings.ToUpper(region) {
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}

// DialString returns an RFC 3966 tel: URI for raw, or "" if it can't be parsed.
func DialString(raw, region string) string {
	if region == "" {
		region = DefaultRegion
	}
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.RFC3966)
}
