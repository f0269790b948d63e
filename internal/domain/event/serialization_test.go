package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-registration/internal/domain/participant"
)

func enrollAll(t *testing.T, e *Event) {
	t.Helper()
	require.NoError(t, e.Enroll(participant.New("Ana", "ana@x.com")))
	require.NoError(t, e.Enroll(participant.New("Bruno", "bruno@x.com")))
	_, err := e.CheckIn("ana@x.com")
	require.NoError(t, err)
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
	}{
		{
			name:  "基本イベント",
			event: New(1, "DevConf", testDate(), "Recife", 10, "Tech", 100.0),
		},
		{
			name:  "ワークショップ",
			event: NewWorkshop(2, "Go入門", testDate(), "Tokyo", 20, "Tech", 80.0, "ノートPC"),
		},
		{
			name:  "講演",
			event: NewLecture(3, "基調講演", testDate(), "Osaka", 500, "Keynote", 0.0, "山田太郎"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enrollAll(t, tt.event)

			data, err := json.Marshal(tt.event)
			require.NoError(t, err)

			var got Event
			require.NoError(t, json.Unmarshal(data, &got))

			assert.Equal(t, tt.event.ID, got.ID)
			assert.Equal(t, tt.event.Name, got.Name)
			assert.True(t, tt.event.Date.Equal(got.Date))
			assert.Equal(t, tt.event.Location, got.Location)
			assert.Equal(t, tt.event.MaxCapacity, got.MaxCapacity)
			assert.Equal(t, tt.event.Category, got.Category)
			assert.Equal(t, tt.event.Price, got.Price)
			assert.Equal(t, tt.event.Kind, got.Kind)
			assert.Equal(t, tt.event.RequiredMaterial, got.RequiredMaterial)
			assert.Equal(t, tt.event.Speaker, got.Speaker)
			// 登録者は順序も含めて一致する
			assert.Equal(t, tt.event.Participants(), got.Participants())
			assert.Equal(t, tt.event.CheckedInEmails(), got.CheckedInEmails())
			// 導出集合も復元される
			assert.True(t, got.IsEnrolled("bruno@x.com"))
		})
	}
}

func TestEvent_MarshalJSON_KindFields(t *testing.T) {
	t.Run("基本イベントでもkindを必ず出力する", func(t *testing.T) {
		data, err := json.Marshal(New(1, "DevConf", testDate(), "Recife", 10, "Tech", 100.0))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `"event"`, string(raw["kind"]))
		assert.NotContains(t, raw, "required_material")
		assert.NotContains(t, raw, "speaker")
	})

	t.Run("ワークショップはrequired_materialのみ出力する", func(t *testing.T) {
		data, err := json.Marshal(NewWorkshop(2, "Go入門", testDate(), "Tokyo", 20, "Tech", 80.0, "ノートPC"))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `"workshop"`, string(raw["kind"]))
		assert.Contains(t, raw, "required_material")
		assert.NotContains(t, raw, "speaker")
	})

	t.Run("講演はspeakerのみ出力する", func(t *testing.T) {
		data, err := json.Marshal(NewLecture(3, "基調講演", testDate(), "Osaka", 500, "Keynote", 0.0, "山田太郎"))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `"lecture"`, string(raw["kind"]))
		assert.Contains(t, raw, "speaker")
		assert.NotContains(t, raw, "required_material")
	})
}

func TestEvent_UnmarshalJSON_KindDispatch(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		expectedKind Kind
	}{
		{
			name:         "kind未指定は基本イベント",
			payload:      `{"id":1,"name":"X","date":"2026-10-01","location":"Y","max_capacity":5,"category":"C","price":10,"enrolled":[],"checked_in":[]}`,
			expectedKind: KindEvent,
		},
		{
			name:         "未知のkindは基本イベント",
			payload:      `{"kind":"seminar","id":1,"name":"X","date":"2026-10-01","location":"Y","max_capacity":5,"category":"C","price":10,"enrolled":[],"checked_in":[]}`,
			expectedKind: KindEvent,
		},
		{
			name:         "workshop",
			payload:      `{"kind":"workshop","id":1,"name":"X","date":"2026-10-01","location":"Y","max_capacity":5,"category":"C","price":10,"enrolled":[],"checked_in":[],"required_material":"PC"}`,
			expectedKind: KindWorkshop,
		},
		{
			name:         "lecture",
			payload:      `{"kind":"lecture","id":1,"name":"X","date":"2026-10-01","location":"Y","max_capacity":5,"category":"C","price":10,"enrolled":[],"checked_in":[],"speaker":"Dr. Go"}`,
			expectedKind: KindLecture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Event
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &e))
			assert.Equal(t, tt.expectedKind, e.Kind)
		})
	}
}

func TestEvent_UnmarshalJSON_RebuildsDerivedState(t *testing.T) {
	payload := `{
		"kind": "event",
		"id": 7,
		"name": "DevConf",
		"date": "2026-10-01",
		"location": "Recife",
		"max_capacity": 3,
		"category": "Tech",
		"price": 100,
		"enrolled": [
			{"name": "Ana", "email": "ana@x.com"},
			{"name": "Bruno", "email": "bruno@x.com"}
		],
		"checked_in": ["ana@x.com"]
	}`

	var e Event
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	assert.Equal(t, 2, e.EnrolledCount())
	assert.Equal(t, 1, e.AvailableSlots())
	assert.True(t, e.IsEnrolled("ana@x.com"))
	assert.True(t, e.IsEnrolled("BRUNO@x.com"))
	assert.Equal(t, []string{"ana@x.com"}, e.CheckedInEmails())

	// 復元後も状態遷移がそのまま機能する
	already, err := e.CheckIn("ana@x.com")
	require.NoError(t, err)
	assert.True(t, already)
	require.NoError(t, e.Enroll(participant.New("Carla", "carla@x.com")))
	assert.ErrorIs(t, e.Enroll(participant.New("Davi", "davi@x.com")), ErrEventFull)
}

func TestEvent_UnmarshalJSON_InvalidDate(t *testing.T) {
	var e Event
	err := json.Unmarshal([]byte(`{"kind":"event","id":1,"name":"X","date":"01/10/2026"}`), &e)
	require.Error(t, err)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ev := New(1, "DevConf", testDate(), "Recife", 10, "Tech", 100.0)
	ws := NewWorkshop(2, "Go入門", testDate(), "Tokyo", 20, "Tech", 80.0, "ノートPC")
	snap := Snapshot{Seq: 3, Events: []*Event{ev, ws}}

	data, err := json.Marshal(&snap)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got.Seq)
	require.Len(t, got.Events, 2)
	assert.Equal(t, KindEvent, got.Events[0].Kind)
	assert.Equal(t, KindWorkshop, got.Events[1].Kind)
	assert.Equal(t, "ノートPC", got.Events[1].RequiredMaterial)
}
