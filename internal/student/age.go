package student

import "time"

// AgeReferenceDate is the fixed date ages are computed against, so a cohort's
// reported ages stay stable across the academic year.
var AgeReferenceDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Age returns full years between birthDate and AgeReferenceDate.
func Age(birthDate time.Time) int {
	return AgeAt(birthDate, AgeReferenceDate)
}

func AgeAt(birthDate, ref time.Time) int {
	birthDate = birthDate.UTC()
	ref = ref.UTC()

	age := ref.Year() - birthDate.Year()

	monthDiff := int(ref.Month()) - int(birthDate.Month())
	if monthDiff < 0 || (monthDiff == 0 && ref.Day() < birthDate.Day()) {
		age--
	}
	return age
}
