package practice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackFor(t *testing.T) {
	tests := []struct {
		score float64
		want  FeedbackLevel
	}{
		{100, Success},
		{85, Success},
		{80, Success},
		{79.9, Warning},
		{60, Warning},
		{59.99, Danger},
		{0, Danger},
		{-5, Danger},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FeedbackFor(tt.score), "score %v", tt.score)
	}
}

func TestDifficultyColor(t *testing.T) {
	assert.Equal(t, Green, DifficultyColor(Beginner))
	assert.Equal(t, Yellow, DifficultyColor(Intermediate))
	assert.Equal(t, Red, DifficultyColor(Advanced))
	assert.Equal(t, Gray, DifficultyColor("Expert"))
	assert.Equal(t, Gray, DifficultyColor(""))
}

func TestWordJSON(t *testing.T) {
	var w Word
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"word":"ambiguous","meaning":"unclear","difficulty":"Advanced"}`), &w))
	id, ok := w.ID.Get()
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)
	assert.True(t, w.Difficulty.Known())

	var absent Word
	require.NoError(t, json.Unmarshal([]byte(`{"word":"x","difficulty":"Expert"}`), &absent))
	_, ok = absent.ID.Get()
	assert.False(t, ok)
	assert.False(t, absent.Difficulty.Known())
	assert.Equal(t, "<none>", absent.ID.String())

	var null Word
	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &null))
	_, ok = null.ID.Get()
	assert.False(t, ok)

	var whole Word
	require.NoError(t, json.Unmarshal([]byte(`{"id":3.0}`), &whole))
	id, ok = whole.ID.Get()
	assert.True(t, ok)
	assert.EqualValues(t, 3, id)

	assert.Error(t, json.Unmarshal([]byte(`{"id":3.5}`), &Word{}))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"seven"}`), &Word{}))
}

func TestWordIDMarshal(t *testing.T) {
	b, err := json.Marshal(Word{ID: NewWordID(9), Word: "w"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9,"word":"w","meaning":"","difficulty":""}`, string(b))

	b, err = json.Marshal(Word{Word: "w"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"word":"w","meaning":"","difficulty":""}`, string(b))
}
