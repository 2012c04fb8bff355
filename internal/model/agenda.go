package model

import "strings"

type AgendaItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// AddAgendaItem appends text to the end of the agenda. Blank text is
// rejected without changing the agenda.
func (m *Meeting) AddAgendaItem(text string) (AgendaItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return AgendaItem{}, false
	}

	item := AgendaItem{ID: m.Sequences.Agenda.Next(), Text: text}
	m.Agenda = append(m.Agenda, item)
	return item, true
}

// UpdateAgendaItem replaces the text of item id in place; its position in
// the agenda does not change. Blank text leaves the item as it was and
// reports false, like AddAgendaItem. An unknown id is ErrAgendaItemNotFound.
func (m *Meeting) UpdateAgendaItem(id int64, text string) (bool, error) {
	text = strings.TrimSpace(text)
	for i := range m.Agenda {
		if m.Agenda[i].ID == id {
			if text == "" {
				return false, nil
			}
			m.Agenda[i].Text = text
			return true, nil
		}
	}
	return false, ErrAgendaItemNotFound
}

// RemoveAgendaItem drops item id. Stored ids are kept; only the displayed
// position of later items shifts.
func (m *Meeting) RemoveAgendaItem(id int64) bool {
	for i, item := range m.Agenda {
		if item.ID == id {
			m.Agenda = append(m.Agenda[:i], m.Agenda[i+1:]...)
			return true
		}
	}
	return false
}

// AgendaPosition returns the 1-based display position of item id, or 0.
func (m Meeting) AgendaPosition(id int64) int {
	for i, item := range m.Agenda {
		if item.ID == id {
			return i + 1
		}
	}
	return 0
}
