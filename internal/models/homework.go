package models

type Homework struct {
	StudentID     string `json:"Student_ID" bson:"Student_ID"`
	Subject       string `json:"Subject" bson:"Subject"`
	DueDate       string `json:"Due_Date" bson:"Due_Date"`
	Status        string `json:"Status" bson:"Status"`
	GradeFeedback string `json:"Grade_Feedback" bson:"Grade_Feedback"`
}

// HomeworkCompletion is a document in the homework_completion collection,
// related one-to-many to performance by Student_ID.
type HomeworkCompletion struct {
	StudentID            string  `json:"Student_ID" bson:"Student_ID"`
	CompletionPercentage float64 `json:"Completion_Percentage" bson:"Completion_Percentage"`
	Date                 string  `json:"Date" bson:"Date"`
}
