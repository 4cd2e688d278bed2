// Package share implements the read-only share-link codec and the optional
// URL shortener client. The codec subsets state to one month, strips
// instructors down to id and name, and compresses the JSON into a URL-safe
// token. Compression is an off-the-shelf DEFLATE embedding, not a format of
// our own.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// QueryParam is the URL query parameter carrying the share token. A query
// parameter survives URL shorteners, which strip fragments.
const QueryParam = "s"

// InstructorRef is the minimal instructor view embedded in a share payload:
// availability and capability are stripped — a viewer only needs names.
type InstructorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payload is the share-link document: one month's schedule and cancelled
// days plus the instructors that month references. ViewOnly is always true
// on encode; decoders use it to disable every mutation control.
type Payload struct {
	Month         int                            `json:"month"` // 1-12
	Year          int                            `json:"year"`
	Instructors   []InstructorRef                `json:"instructors"`
	Schedule      map[string]*domain.DaySchedule `json:"schedule"`
	ClassDays     []int                          `json:"classDays"`
	CancelledDays map[string]bool                `json:"cancelledDays"`
	ViewOnly      bool                           `json:"viewOnly"`
}

// BuildPayload subsets the state to the given month: schedule entries and
// cancelled flags with that month's date prefix, and only the instructors
// referenced (as main or assistant) by those entries. The payload deep-copies
// everything it takes from st, so it stays valid after the store lock the
// caller holds is released.
func BuildPayload(st *domain.State, year int, month time.Month) Payload {
	prefix := domain.MonthPrefix(year, month)

	schedule := make(map[string]*domain.DaySchedule)
	referenced := make(map[string]bool)
	for date, day := range st.Schedule {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		schedule[date] = day.Clone()
		for _, g := range domain.Groups() {
			slot := day.Slot(g)
			if slot.MainID != "" {
				referenced[slot.MainID] = true
			}
			for _, id := range slot.Assistants {
				referenced[id] = true
			}
		}
	}

	cancelled := make(map[string]bool)
	for date := range st.CancelledDays {
		if strings.HasPrefix(date, prefix) {
			cancelled[date] = true
		}
	}

	var refs []InstructorRef
	for _, inst := range st.Instructors {
		if referenced[inst.ID] {
			refs = append(refs, InstructorRef{ID: inst.ID, Name: inst.Name})
		}
	}

	return Payload{
		Month:         int(month),
		Year:          year,
		Instructors:   refs,
		Schedule:      schedule,
		ClassDays:     append([]int(nil), st.ClassDays...),
		CancelledDays: cancelled,
		ViewOnly:      true,
	}
}

// ToState expands a decoded payload into a display-ready State. Instructors
// get empty capability and availability sets — a view-only schedule never
// validates or generates anything.
func (p Payload) ToState() *domain.State {
	st := &domain.State{
		Instructors:   make([]domain.Instructor, 0, len(p.Instructors)),
		Schedule:      p.Schedule,
		ClassDays:     p.ClassDays,
		CancelledDays: p.CancelledDays,
	}
	for _, ref := range p.Instructors {
		st.Instructors = append(st.Instructors, domain.Instructor{
			ID:             ref.ID,
			Name:           ref.Name,
			Groups:         []domain.Group{},
			AvailableDates: []string{},
		})
	}
	if st.Schedule == nil {
		st.Schedule = make(map[string]*domain.DaySchedule)
	}
	if st.CancelledDays == nil {
		st.CancelledDays = make(map[string]bool)
	}
	return st
}

// Encode serializes and compresses the payload into a URL-safe token.
func Encode(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("share.Encode: %w", err)
	}
	return Compress(raw)
}

// Decode reverses Encode. Any failure — bad base64, bad DEFLATE stream,
// bad JSON — returns an error without partial results, so callers can keep
// their existing state untouched.
func Decode(token string) (Payload, error) {
	raw, err := Decompress(token)
	if err != nil {
		return Payload{}, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("share.Decode: %w", err)
	}
	return p, nil
}

// Compress DEFLATEs data and encodes it with unpadded URL-safe base64.
func Compress(data []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("share.Compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("share.Compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("share.Compress: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress reverses Compress.
func Decompress(token string) ([]byte, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("share.Decompress: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("share.Decompress: %w", err)
	}
	return raw, nil
}
