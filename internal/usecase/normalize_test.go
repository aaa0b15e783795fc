package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestNormalizeEventFractionScore(t *testing.T) {
	ev := NormalizeEvent(decode(t, `{"event":"test-end","email":"a@x.com","lesson":{"score":0.8}}`))
	require.NotNil(t, ev.Score)
	assert.Equal(t, 80.0, *ev.Score)
}

func TestNormalizeEventScoreExactlyOneStaysOne(t *testing.T) {
	// A bare 1 from the platform means "1 percent", not "100%". Policy, not a bug.
	ev := NormalizeEvent(decode(t, `{"event":"test-end","lesson":{"score":1.0}}`))
	require.NotNil(t, ev.Score)
	assert.Equal(t, 1.0, *ev.Score)
}

func TestNormalizeEventPercentScorePassesThrough(t *testing.T) {
	ev := NormalizeEvent(decode(t, `{"event":"test-end","lesson":{"score":95}}`))
	require.NotNil(t, ev.Score)
	assert.Equal(t, 95.0, *ev.Score)
}

func TestNormalizeEventZeroScoreIsPresent(t *testing.T) {
	ev := NormalizeEvent(decode(t, `{"lesson":{"score":0}}`))
	require.NotNil(t, ev.Score)
	assert.Equal(t, 0.0, *ev.Score)
}

func TestNormalizeEventStringScore(t *testing.T) {
	ev := NormalizeEvent(decode(t, `{"lesson":{"score":"0.5"}}`))
	require.NotNil(t, ev.Score)
	assert.Equal(t, 50.0, *ev.Score)
}

func TestNormalizeEventNameCandidates(t *testing.T) {
	assert.Equal(t, "test-end", NormalizeEvent(decode(t, `{"event":"test-end"}`)).Name)
	assert.Equal(t, "test-end", NormalizeEvent(decode(t, `{"event_name":"test-end"}`)).Name)
	assert.Equal(t, "test-end", NormalizeEvent(decode(t, `{"type":"test-end"}`)).Name)
	assert.Equal(t, "test-end", NormalizeEvent(decode(t, `{"data":{"event":"test-end"}}`)).Name)
	// First non-empty wins over later candidates.
	assert.Equal(t, "a", NormalizeEvent(decode(t, `{"event":"a","type":"b"}`)).Name)
	assert.Equal(t, "b", NormalizeEvent(decode(t, `{"event":"","type":"b"}`)).Name)
}

func TestNormalizeEventEmailCandidates(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEvent(decode(t, `{"email":"a@x.com"}`)).Email)
	assert.Equal(t, "a@x.com", NormalizeEvent(decode(t, `{"user":{"email":" a@x.com "}}`)).Email)
	assert.Equal(t, "a@x.com", NormalizeEvent(decode(t, `{"student":{"email":"a@x.com"}}`)).Email)
	assert.Equal(t, "a@x.com", NormalizeEvent(decode(t, `{"data":{"user":{"email":"a@x.com"}}}`)).Email)
	assert.Equal(t, "", NormalizeEvent(decode(t, `{"user":{"email":"   "}}`)).Email)
}

func TestNormalizeEventIdentifierCoercion(t *testing.T) {
	ev := NormalizeEvent(decode(t, `{"lesson":{"id":7},"course":{"id":"C1"}}`))
	assert.Equal(t, "7", ev.LessonID)
	assert.Equal(t, "C1", ev.CourseID)

	// Present-but-falsy still counts as present.
	ev = NormalizeEvent(decode(t, `{"lesson_id":"","course_id":0}`))
	assert.Equal(t, "", ev.LessonID)
	assert.Equal(t, "0", ev.CourseID)
}

func TestNormalizeEventMalformedPayloadNeverPanics(t *testing.T) {
	cases := []string{
		`{}`,
		`{"event":12345}`,
		`{"lesson":"not an object"}`,
		`{"lesson":{"score":"not a number"}}`,
		`{"user":[1,2,3]}`,
		`{"email":null,"lesson":{"score":null}}`,
	}
	for _, raw := range cases {
		ev := NormalizeEvent(decode(t, raw))
		assert.Nil(t, ev.Score, raw)
		assert.Empty(t, ev.Email, raw)
	}
}

func TestNormalizeEventTelegramID(t *testing.T) {
	assert.Equal(t, int64(42), NormalizeEvent(decode(t, `{"telegram_id":42}`)).TelegramID)
	assert.Equal(t, int64(42), NormalizeEvent(decode(t, `{"user":{"telegram_id":"42"}}`)).TelegramID)
}
