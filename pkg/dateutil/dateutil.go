package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// YearsUntilAge returns the whole years left before someone of the given age
// reaches target. It never goes below zero.
func YearsUntilAge(age, target int) int {
	if age >= target {
		return 0
	}
	return target - age
}

// CalendarYear returns the calendar year that closes projection year n
// (1-based) when the projection starts at from.
func CalendarYear(from time.Time, n int) int {
	return from.Year() + n
}
