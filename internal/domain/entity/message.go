package entity

import "time"

// Role suhbat ishtirokchisi
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn transcriptdagi bitta qadam
type Turn struct {
	Role      Role            `json:"role"`
	Content   string          `json:"content,omitempty"`
	ToolCall  *ToolInvocation `json:"toolCall,omitempty"`
	Timestamp time.Time       `json:"ts"`
}

// Transcript sessiyaga tegishli suhbat tarixi. Birinchi turn har doim system primer.
type Transcript []Turn

// Primer system turn ni qaytaradi
func (t Transcript) Primer() string {
	if len(t) > 0 && t[0].Role == RoleSystem {
		return t[0].Content
	}
	return ""
}

// Dialogue system turn siz qismi (generation uchun)
func (t Transcript) Dialogue() []Turn {
	out := make([]Turn, 0, len(t))
	for _, turn := range t {
		if turn.Role == RoleSystem {
			continue
		}
		out = append(out, turn)
	}
	return out
}

// Trim primer ni saqlab, oxirgi max ta turn ni qoldiradi. Kesilgan tarix user turn dan boshlanadi.
func (t Transcript) Trim(max int) Transcript {
	dialogue := t.Dialogue()
	if max <= 0 || len(dialogue) <= max {
		return t
	}

	tail := dialogue[len(dialogue)-max:]
	for len(tail) > 0 && tail[0].Role != RoleUser {
		tail = tail[1:]
	}

	out := make(Transcript, 0, len(tail)+1)
	if len(t) > 0 && t[0].Role == RoleSystem {
		out = append(out, t[0])
	}
	return append(out, tail...)
}
