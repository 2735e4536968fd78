package entity

import "time"

// Session bitta mijozning savati va suhbati
type Session struct {
	UserID       string     `json:"userId"`
	Cart         Cart       `json:"cart"`
	Transcript   Transcript `json:"transcript"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActivity time.Time  `json:"lastActivity"`
}

// NewSession yangi sessiya: bo'sh savat va primer bilan boshlangan transcript
func NewSession(userID, primer string, now time.Time) *Session {
	return &Session{
		UserID: userID,
		Cart:   NewCart(),
		Transcript: Transcript{
			{Role: RoleSystem, Content: primer, Timestamp: now},
		},
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Append transcriptga turn qo'shish
func (s *Session) Append(turn Turn) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	s.Transcript = append(s.Transcript, turn)
	s.LastActivity = turn.Timestamp
}

// Clone sessiyaning chuqur nusxasi
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Cart = s.Cart.Snapshot()
	cp.Transcript = make(Transcript, len(s.Transcript))
	for i, turn := range s.Transcript {
		if turn.ToolCall != nil {
			tc := turn.ToolCall.Clone()
			turn.ToolCall = &tc
		}
		cp.Transcript[i] = turn
	}
	return &cp
}
