package domain

import "time"

// Day отбрасывает время суток, оставляя календарную дату (в UTC)
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(d), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDay сравнивает только год, месяц и день
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
