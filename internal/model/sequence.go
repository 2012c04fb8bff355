package model

// Sequence is a monotonic id allocator for one collection. Ids handed out
// are never reused, even after the entry that held them is removed.
type Sequence struct {
	Last int64 `json:"last"`
}

func (s *Sequence) Next() int64 {
	s.Last++
	return s.Last
}

// Observe moves the sequence past an id that was assigned elsewhere.
func (s *Sequence) Observe(id int64) {
	if id > s.Last {
		s.Last = id
	}
}
