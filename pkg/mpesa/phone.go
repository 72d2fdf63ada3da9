package mpesa

import "strings"

// FormatPhoneNumber maps common Kenyan phone formats to the
// international 254... form Daraja expects:
//
//	+2547XXXXXXXX -> 2547XXXXXXXX
//	07XXXXXXXX    -> 2547XXXXXXXX
//	01XXXXXXXX    -> 2541XXXXXXXX
//
// Anything else passes through unchanged, malformed input included.
// No validation of length or digit content is performed.
func FormatPhoneNumber(phone string) string {
	formatted := strings.TrimSpace(phone)

	formatted = strings.TrimPrefix(formatted, "+")

	if strings.HasPrefix(formatted, "07") || strings.HasPrefix(formatted, "01") {
		formatted = "254" + formatted[1:]
	}

	return formatted
}
