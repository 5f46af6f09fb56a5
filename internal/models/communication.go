package models

type Communication struct {
	StudentID      string `json:"Student_ID" bson:"Student_ID"`
	MessageType    string `json:"Message_Type" bson:"Message_Type"`
	Date           string `json:"Date" bson:"Date"`
	MessageContent string `json:"Message_Content" bson:"Message_Content"`
}
