package mongo

import (
	"testing"
	"time"

	"stargazer/exercise-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildExerciseMatch_UserOnly(t *testing.T) {
	userID := primitive.NewObjectID()

	match := buildExerciseMatch(repository.ExerciseFilter{UserID: userID})

	assert.Equal(t, bson.M{"user": userID}, match)
}

func TestBuildExerciseMatch_DateBounds(t *testing.T) {
	userID := primitive.NewObjectID()
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))

	match := buildExerciseMatch(repository.ExerciseFilter{UserID: userID, From: &from, To: &to})

	dateRange, ok := match["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, from, dateRange["$gte"])
	assert.Equal(t, to.UTC(), dateRange["$lte"])
}

func TestBuildExerciseMatch_UpperBoundOnly(t *testing.T) {
	to := time.Now().UTC()

	match := buildExerciseMatch(repository.ExerciseFilter{UserID: primitive.NewObjectID(), To: &to})

	dateRange := match["date"].(bson.M)
	assert.NotContains(t, dateRange, "$gte")
	assert.Contains(t, dateRange, "$lte")
}

func TestBuildLogPipeline_Stages(t *testing.T) {
	withoutLimit := buildLogPipeline(repository.ExerciseFilter{UserID: primitive.NewObjectID()})
	require.Len(t, withoutLimit, 4)
	assert.Equal(t, "$match", withoutLimit[0][0].Key)
	assert.Equal(t, "$sort", withoutLimit[1][0].Key)
	assert.Equal(t, "$lookup", withoutLimit[2][0].Key)
	assert.Equal(t, "$unwind", withoutLimit[3][0].Key)

	withLimit := buildLogPipeline(repository.ExerciseFilter{UserID: primitive.NewObjectID(), Limit: 2})
	require.Len(t, withLimit, 5)
	assert.Equal(t, "$limit", withLimit[2][0].Key)
	assert.Equal(t, int64(2), withLimit[2][0].Value)
}
