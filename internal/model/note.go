package model

import (
	"strings"
	"time"
)

// NoteTimestampLayout is the display format notes are stamped with.
const NoteTimestampLayout = "2006-01-02 3:04 PM"

// Note is append-only: there is no edit or delete.
type Note struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (m *Meeting) AddNote(author, content string, at time.Time) (Note, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Note{}, false
	}

	note := Note{
		ID:        m.Sequences.Notes.Next(),
		Author:    strings.TrimSpace(author),
		Content:   content,
		Timestamp: at.Format(NoteTimestampLayout),
	}
	m.Notes = append(m.Notes, note)
	return note, true
}
