package domain

// Schedule is a recurring weekly class or meeting slot. TimeStart and
// TimeEnd are "HH:MM" strings in the owner's local time, kept opaque because
// the service never computes with them.
type Schedule struct {
	ID         string
	OwnerID    string
	CourseName string
	Session    string
	DayOfWeek  DayOfWeek
	TimeStart  string
	TimeEnd    string
	Location   string
	Lecturer   string
}
