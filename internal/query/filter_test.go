package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterBSON(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		f := NewFilter()
		require.NoError(t, f.Validate())
		assert.Equal(t, bson.M{}, f.BSON())
	})

	t.Run("equality and lower bound", func(t *testing.T) {
		f := NewFilter().
			Eq("Subject", "Math").
			Gte("Exam_Score", 70)
		require.NoError(t, f.Validate())
		assert.Equal(t, bson.M{
			"Subject":    "Math",
			"Exam_Score": bson.M{"$gte": 70},
		}, f.BSON())
	})

	t.Run("inclusive range", func(t *testing.T) {
		f := NewFilter().Range("Date", "2024-01-01", "2024-01-31")
		require.NoError(t, f.Validate())
		assert.Equal(t, bson.M{
			"Date": bson.M{"$gte": "2024-01-01", "$lte": "2024-01-31"},
		}, f.BSON())
	})

	t.Run("prefix quotes regex metacharacters", func(t *testing.T) {
		f := NewFilter().Prefix("Grade_Feedback", "A+")
		require.NoError(t, f.Validate())
		assert.Equal(t, bson.M{
			"Grade_Feedback": bson.M{"$regex": `^A\+`},
		}, f.BSON())
	})

	t.Run("raw regex passes through", func(t *testing.T) {
		f := NewFilter().Regex("Homework_Completion_%", "^8[0-9]")
		require.NoError(t, f.Validate())
		assert.Equal(t, bson.M{
			"Homework_Completion_%": bson.M{"$regex": "^8[0-9]"},
		}, f.BSON())
	})
}

func TestFilterValidate(t *testing.T) {
	t.Run("empty field", func(t *testing.T) {
		assert.Error(t, NewFilter().Eq("", 1).Validate())
	})

	t.Run("nil value", func(t *testing.T) {
		assert.Error(t, NewFilter().Gte("Exam_Score", nil).Validate())
	})

	t.Run("half-open range", func(t *testing.T) {
		assert.Error(t, NewFilter().Range("Date", "2024-01-01", nil).Validate())
	})

	t.Run("empty prefix", func(t *testing.T) {
		assert.Error(t, NewFilter().Prefix("Grade_Feedback", "").Validate())
	})

	t.Run("invalid regex", func(t *testing.T) {
		assert.Error(t, NewFilter().Regex("Homework_Completion_%", "[").Validate())
	})
}
