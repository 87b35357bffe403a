package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const maskedValue = "[REDACTED]"

// Field names whose values never reach a log line.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"secret":        {},
	"secret_key":    {},
	"api_key":       {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
	"card_number":   {},
	"cvv":           {},
	"cvc":           {},
	"credit_card":   {},
}

// Redact returns a copy of fields with sensitive values replaced.
// Nested logrus.Fields values are redacted recursively.
func Redact(fields logrus.Fields) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if _, bad := sensitiveKeys[strings.ToLower(k)]; bad {
			out[k] = maskedValue
			continue
		}
		if nested, ok := v.(logrus.Fields); ok {
			out[k] = Redact(nested)
			continue
		}
		out[k] = v
	}
	return out
}
