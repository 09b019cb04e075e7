package domain

import "time"

// AdultAge is the minimum age for employment.
const AdultAge = 18

// AgeOn returns the age in whole years of someone born on birthDate, as of now.
// The year difference is reduced by one when now falls before this year's birthday,
// so a Feb 29 birthday is reached on Mar 1 in non-leap years.
func AgeOn(birthDate, now time.Time) int {
	by, bm, bd := birthDate.Date()
	ny, nm, nd := now.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// IsOver18 returns true if the person with the given birth date is 18 years old or older
// at the specified reference time.
//
// Example:
//
//	birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
//	now := time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC) // Exactly 18th birthday
//	IsOver18(birthDate, now) // returns true
func IsOver18(birthDate, now time.Time) bool {
	return AgeOn(birthDate, now) >= AdultAge
}
