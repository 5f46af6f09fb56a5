package models

type Student struct {
	StudentID        string `json:"Student_ID" bson:"Student_ID"`
	FullName         string `json:"Full_Name" bson:"Full_Name"`
	GradeLevel       string `json:"Grade_Level" bson:"Grade_Level"`
	EmergencyContact string `json:"Emergency_Contact,omitempty" bson:"Emergency_Contact,omitempty"`
}
