package models

// Performance mirrors a document in the performance collection. Exam_Score
// may arrive as free text in the source data, so it is kept loosely typed
// until the ETL coerces it.
type Performance struct {
	StudentID          string      `json:"Student_ID" bson:"Student_ID"`
	Subject            string      `json:"Subject" bson:"Subject"`
	ExamScore          interface{} `json:"Exam_Score" bson:"Exam_Score"`
	HomeworkCompletion string      `json:"Homework_Completion_%" bson:"Homework_Completion_%"`
	TeacherComments    string      `json:"Teacher_Comments" bson:"Teacher_Comments"`
}

// CombinedRow is one fan-out row of the performance/homework-completion join.
type CombinedRow struct {
	StudentID          string      `json:"Student_ID" bson:"Student_ID"`
	Subject            string      `json:"Subject" bson:"Subject"`
	ExamScore          interface{} `json:"Exam_Score" bson:"Exam_Score"`
	HomeworkCompletion float64     `json:"Homework_Completion" bson:"Homework_Completion"`
	LastUpdate         string      `json:"Last_Update,omitempty" bson:"Last_Update,omitempty"`
}
