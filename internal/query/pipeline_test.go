package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageKey(stage bson.D) string {
	return stage[0].Key
}

func stageValue(stage bson.D) bson.D {
	return stage[0].Value.(bson.D)
}

func TestCombinedPipeline(t *testing.T) {
	t.Run("unwind follows lookup so unmatched parents drop out", func(t *testing.T) {
		p := CombinedPipeline("", 0, false)
		require.Len(t, p, 4)
		assert.Equal(t, "$lookup", stageKey(p[0]))
		assert.Equal(t, "$unwind", stageKey(p[1]))
		assert.Equal(t, "$match", stageKey(p[2]))
		assert.Equal(t, "$project", stageKey(p[3]))
	})

	t.Run("subject filter is prepended", func(t *testing.T) {
		p := CombinedPipeline("Math", 0, false)
		require.Len(t, p, 5)
		assert.Equal(t, "$match", stageKey(p[0]))
		assert.Equal(t, bson.D{{Key: "Subject", Value: "Math"}}, stageValue(p[0]))
	})

	t.Run("lookup joins homework_completion on Student_ID", func(t *testing.T) {
		p := CombinedPipeline("", 0, false)
		lookup := stageValue(p[0])
		assert.Equal(t, bson.D{
			{Key: "from", Value: "homework_completion"},
			{Key: "localField", Value: "Student_ID"},
			{Key: "foreignField", Value: "Student_ID"},
			{Key: "as", Value: "homework_data"},
		}, lookup)
	})

	t.Run("completion threshold filters the joined field", func(t *testing.T) {
		p := CombinedPipeline("", 75, false)
		match := stageValue(p[2])
		require.Len(t, match, 1)
		assert.Equal(t, "homework_data.Completion_Percentage", match[0].Key)
		assert.Equal(t, bson.D{{Key: "$gte", Value: 75}}, match[0].Value)
	})

	t.Run("analysis projection includes the completion timestamp", func(t *testing.T) {
		withTS := CombinedPipeline("", 0, true)
		withoutTS := CombinedPipeline("", 0, false)

		fields := func(p bson.D) []string {
			var names []string
			for _, e := range p {
				names = append(names, e.Key)
			}
			return names
		}
		assert.Contains(t, fields(stageValue(withTS[3])), "Last_Update")
		assert.NotContains(t, fields(stageValue(withoutTS[3])), "Last_Update")
	})
}

func TestDashboardPipeline(t *testing.T) {
	p := DashboardPipeline()
	require.Len(t, p, 1)
	require.Equal(t, "$facet", stageKey(p[0]))

	facet := stageValue(p[0])
	require.Len(t, facet, 3)
	assert.Equal(t, "attendance_stats", facet[0].Key)
	assert.Equal(t, "homework_status", facet[1].Key)
	assert.Equal(t, "recent_comms", facet[2].Key)

	t.Run("attendance branch groups by status", func(t *testing.T) {
		branch := facet[0].Value.(bson.A)
		require.Len(t, branch, 1)
		group := branch[0].(bson.D)
		assert.Equal(t, "$group", group[0].Key)
	})

	t.Run("homework branch pulls from its real collection", func(t *testing.T) {
		branch := facet[1].Value.(bson.A)
		lookup := branch[1].(bson.D)
		require.Equal(t, "$lookup", lookup[0].Key)
		spec := lookup[0].Value.(bson.D)
		assert.Equal(t, "homework", spec[0].Value)
	})

	t.Run("recent comms branch sorts descending and caps at five", func(t *testing.T) {
		branch := facet[2].Value.(bson.A)
		lookup := branch[1].(bson.D)
		require.Equal(t, "$lookup", lookup[0].Key)
		spec := lookup[0].Value.(bson.D)
		assert.Equal(t, "teacher_parent_communication", spec[0].Value)

		sub := spec[1].Value.(bson.A)
		sort := sub[0].(bson.D)
		assert.Equal(t, "$sort", sort[0].Key)
		assert.Equal(t, bson.D{{Key: "Date", Value: -1}}, sort[0].Value)
		limit := sub[1].(bson.D)
		assert.Equal(t, "$limit", limit[0].Key)
		assert.Equal(t, 5, limit[0].Value)
	})
}

func TestCompletionTextRegex(t *testing.T) {
	assert.Equal(t, "^80|^[1-9][0-9]%|^100%", CompletionTextRegex(80))
}
