package query

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CombinedPipeline joins performance with homework_completion by Student_ID.
// The lookup fans out one row per matching completion record and the unwind
// drops performance records with no match (inner-join semantics). The
// minimum-completion filter runs after the unwind so it applies to each
// joined row, not to the performance side.
func CombinedPipeline(subject string, minCompletion int, includeLastUpdate bool) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if subject != "" {
		pipeline = append(pipeline, bson.D{
			{Key: "$match", Value: bson.D{{Key: "Subject", Value: subject}}},
		})
	}

	pipeline = append(pipeline,
		bson.D{
			{
				Key: "$lookup",
				Value: bson.D{
					{Key: "from", Value: "homework_completion"},
					{Key: "localField", Value: "Student_ID"},
					{Key: "foreignField", Value: "Student_ID"},
					{Key: "as", Value: "homework_data"},
				},
			},
		},
		bson.D{
			{Key: "$unwind", Value: "$homework_data"},
		},
		bson.D{
			{
				Key: "$match",
				Value: bson.D{
					{Key: "homework_data.Completion_Percentage", Value: bson.D{{Key: "$gte", Value: minCompletion}}},
				},
			},
		},
	)

	projection := bson.D{
		{Key: "_id", Value: 0},
		{Key: "Student_ID", Value: 1},
		{Key: "Subject", Value: 1},
		{Key: "Exam_Score", Value: 1},
		{Key: "Homework_Completion", Value: "$homework_data.Completion_Percentage"},
	}
	if includeLastUpdate {
		projection = append(projection, bson.E{Key: "Last_Update", Value: "$homework_data.Date"})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})

	return pipeline
}

// DashboardPipeline is a single three-branch facet run against the
// attendance collection. The homework and communications branches cannot
// see those collections directly from a facet, so each starts from one
// attendance document and pulls its real data in with a pipeline lookup.
func DashboardPipeline() mongo.Pipeline {
	countByStatus := func(field string) bson.A {
		return bson.A{
			bson.D{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$" + field},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}}},
		}
	}

	fromCollection := func(coll string, sub bson.A) bson.A {
		return bson.A{
			bson.D{{Key: "$limit", Value: 1}},
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: coll},
				{Key: "pipeline", Value: sub},
				{Key: "as", Value: "docs"},
			}}},
			bson.D{{Key: "$unwind", Value: "$docs"}},
			bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$docs"}}}},
		}
	}

	recentComms := bson.A{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "Date", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 5}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "Student_ID", Value: 1},
			{Key: "Date", Value: 1},
		}}},
	}

	return mongo.Pipeline{
		bson.D{
			{
				Key: "$facet",
				Value: bson.D{
					{Key: "attendance_stats", Value: countByStatus("Attendance_Status")},
					{Key: "homework_status", Value: fromCollection("homework", countByStatus("Status"))},
					{Key: "recent_comms", Value: fromCollection("teacher_parent_communication", recentComms)},
				},
			},
		},
	}
}

// CompletionTextRegex is the server-side prefilter over the raw
// "Homework_Completion_%" text for a minimum percentage. It is a coarse
// match; callers re-check the parsed numeric value before returning rows.
func CompletionTextRegex(min int) string {
	return fmt.Sprintf("^%d|^[1-9][0-9]%%|^100%%", min)
}
