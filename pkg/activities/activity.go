package activities

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Activity is a named extracurricular activity as served by the backend.
// Name is not part of the JSON body, it is the key the activity is stored
// under in the catalog. The display fields are kept as the raw JSON the
// backend sent and are printed as they came, whatever their type.
type Activity struct {
	Name            string          `json:"-"`
	Description     json.RawMessage `json:"description,omitempty"`
	Schedule        json.RawMessage `json:"schedule,omitempty"`
	MaxParticipants json.RawMessage `json:"max_participants,omitempty"`
	Participants    []string        `json:"participants"`
}

// Undefined is rendered in place of any field the backend left out.
const Undefined = "undefined"

func NewActivity(name, description, schedule string, maxParticipants int, participants ...string) Activity {
	if participants == nil {
		participants = []string{}
	}

	return Activity{
		Name:            name,
		Description:     rawString(description),
		Schedule:        rawString(schedule),
		MaxParticipants: json.RawMessage(strconv.Itoa(maxParticipants)),
		Participants:    participants,
	}
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func (a Activity) DescriptionText() string {
	return literalText(a.Description)
}

func (a Activity) ScheduleText() string {
	return literalText(a.Schedule)
}

func (a Activity) MaxParticipantsText() string {
	return literalText(a.MaxParticipants)
}

func (a Activity) HasParticipants() bool {
	return len(a.Participants) > 0
}

// literalText prints a JSON value the way it shows up when interpolated
// into page text: strings unquoted, numbers in shortest form, objects as
// [object Object] and anything else as written.
func literalText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Undefined
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '{':
		return "[object Object]"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	return string(raw)
}
