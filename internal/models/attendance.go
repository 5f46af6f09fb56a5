package models

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// ValidAttendanceStatus reports whether s is one of the allowed statuses.
func ValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case StatusPresent, StatusAbsent:
		return true
	}
	return false
}

type Attendance struct {
	StudentID string           `json:"Student_ID" bson:"Student_ID"`
	Subject   string           `json:"Subject" bson:"Subject"`
	Date      string           `json:"Date" bson:"Date"`
	Status    AttendanceStatus `json:"Attendance_Status" bson:"Attendance_Status"`
}
