package view

import "time"

// Severity ranks a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient user-facing notification.
type Notice struct {
	Severity Severity
	Text     string
	At       time.Time
}

const (
	maxNotices = 5
	// NoticeTTL is how long a notice stays on screen.
	NoticeTTL = 5 * time.Second
)

func (s *Synchronizer) notify(sev Severity, text string) {
	n := Notice{Severity: sev, Text: text, At: s.now()}
	if len(s.notices) > 0 {
		last := s.notices[len(s.notices)-1]
		if last.Text == n.Text && last.Severity == n.Severity {
			s.notices[len(s.notices)-1] = n
			return
		}
	}
	s.notices = append(s.notices, n)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

func (s *Synchronizer) liveNotices() []Notice {
	cutoff := s.now().Add(-NoticeTTL)
	var out []Notice
	for _, n := range s.notices {
		if n.At.After(cutoff) {
			out = append(out, n)
		}
	}
	return out
}
