// Package settings defines the per-user display configuration document
// and the read-time policy that substitutes the system default for
// incomplete documents.
package settings

import (
	"encoding/json"
)

// ClockSettings is the style block for a single clock face.
type ClockSettings struct {
	BackgroundColor string `json:"backgroundColor"`
	ForeGroundColor string `json:"foreGroundColor"`
	ShadeColor      string `json:"shadeColor"`
	TopDistance     string `json:"topDistance"`
	SizeFactor      int    `json:"sizeFactor"`
	ShowSeconds     *bool  `json:"showSeconds,omitempty"`
}

// ScheduleEntry activates a clock variant during a time window. Order
// within the schedule is significant; the display client picks the
// active window.
type ScheduleEntry struct {
	FromTime      string        `json:"fromTime"`
	ToTime        string        `json:"toTime"`
	ClockType     string        `json:"clockType"`
	ClockSettings ClockSettings `json:"clockSettings"`
}

// Document is the full display configuration for one account.
type Document struct {
	Schedule                    []ScheduleEntry `json:"Schedule"`
	ForceReload                 bool            `json:"ForceReload"`
	RefreshRate                 int             `json:"RefreshRate"`
	DefaultClock                string          `json:"DefaultClock"`
	WordClockDefaultSettings    ClockSettings   `json:"WordClockDefaultSettings"`
	DigitalClockDefaultSettings ClockSettings   `json:"DigitalClockDefaultSettings"`
	TimerSettings               ClockSettings   `json:"TimerSettings"`
	FlipClockDefaultSettings    ClockSettings   `json:"FlipClockDefaultSettings"`
	ClockClock24DefaultSettings ClockSettings   `json:"ClockClock24DefaultSettings"`
	Timer                       int             `json:"Timer"`
}

// Default returns the system-wide default document. A fresh value is
// built on every call so no caller can mutate shared state.
func Default() Document {
	return Document{
		Schedule: []ScheduleEntry{
			{
				FromTime:  "07:00",
				ToTime:    "23:00",
				ClockType: "wordclock",
				ClockSettings: ClockSettings{
					BackgroundColor: "#242424",
					ForeGroundColor: "#FFF",
					ShadeColor:      "#292929",
					TopDistance:     "1vmin",
					SizeFactor:      90,
				},
			},
		},
		ForceReload:  false,
		RefreshRate:  60,
		DefaultClock: "digital",
		WordClockDefaultSettings: ClockSettings{
			BackgroundColor: "#242424",
			ForeGroundColor: "#FFFFFF",
			ShadeColor:      "#292929",
			TopDistance:     "1vmin",
			SizeFactor:      90,
		},
		DigitalClockDefaultSettings: ClockSettings{
			BackgroundColor: "#000000",
			ForeGroundColor: "#E61919",
			ShadeColor:      "#282828",
			TopDistance:     "25vmin",
			SizeFactor:      90,
		},
		TimerSettings: ClockSettings{
			BackgroundColor: "#242424",
			ForeGroundColor: "#FFFFFF",
			ShadeColor:      "#292929",
			TopDistance:     "1vmin",
			SizeFactor:      90,
		},
		Timer: 0,
		FlipClockDefaultSettings: ClockSettings{
			BackgroundColor: "#242424",
			ForeGroundColor: "#FFFFFF",
			ShadeColor:      "#292929",
			TopDistance:     "1vmin",
			SizeFactor:      90,
		},
		ClockClock24DefaultSettings: ClockSettings{
			BackgroundColor: "#242424",
			ForeGroundColor: "#964545",
			ShadeColor:      "#FFFFFF",
			TopDistance:     "30vmin",
			SizeFactor:      10,
		},
	}
}

// DefaultJSON returns the default document serialized.
func DefaultJSON() json.RawMessage {
	b, _ := json.Marshal(Default())
	return b
}

// completenessProbe reads just enough of a stored document to apply the
// completeness check.
type completenessProbe struct {
	DefaultClock string `json:"DefaultClock"`
}

// Resolve applies the read-time default policy to a stored document.
// A document is complete iff DefaultClock is present and non-empty;
// anything else (absent, empty, unparseable, or missing DefaultClock)
// resolves to the system default. Complete documents are returned
// byte-for-byte as stored, with no backfill of missing sub-fields. The
// substitution is never persisted.
func Resolve(stored []byte) json.RawMessage {
	if len(stored) == 0 {
		return DefaultJSON()
	}
	var probe completenessProbe
	if err := json.Unmarshal(stored, &probe); err != nil {
		return DefaultJSON()
	}
	if probe.DefaultClock == "" {
		return DefaultJSON()
	}
	return json.RawMessage(stored)
}
