// internal/domain/models/study.go
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Study is a caption-rating experiment hosted by the external studies API.
// It is never stored locally.
type Study struct {
	ID                int        `json:"id"`
	Slug              string     `json:"slug"`
	Description       string     `json:"description"`
	StartAt           *time.Time `json:"start_datetime_utc"`
	EndAt             *time.Time `json:"end_datetime_utc"`
	CaptionCount      int        `json:"caption_count"`
	RatedCaptionCount int        `json:"rated_caption_count"`
}

// Progress returns the rated share of captions as a percentage in [0, 100].
func (s Study) Progress() float64 {
	if s.CaptionCount <= 0 {
		return 0
	}
	p := float64(s.RatedCaptionCount) / float64(s.CaptionCount) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// studyTimeLayouts are tried in order. Values without an offset are UTC.
var studyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseStudyTime reads a timestamp from the studies API. Blank or
// unrecognized values return nil.
func ParseStudyTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range studyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// UnmarshalJSON decodes a study, treating unreadable start and end times as
// absent rather than failing the whole payload.
func (s *Study) UnmarshalJSON(data []byte) error {
	type plain Study
	var raw struct {
		plain
		StartAt any `json:"start_datetime_utc"`
		EndAt   any `json:"end_datetime_utc"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Study(raw.plain)
	s.StartAt = studyTime(raw.StartAt)
	s.EndAt = studyTime(raw.EndAt)
	return nil
}

func studyTime(v any) *time.Time {
	str, ok := v.(string)
	if !ok {
		return nil
	}
	return ParseStudyTime(str)
}
