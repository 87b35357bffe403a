package timezone

import "time"

// DefaultTimezone is the installation default until an admin changes the
// timezone setting.
const DefaultTimezone = "UTC"

// IsValid reports whether tz names a loadable IANA timezone.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
