package domain

// SessionState is the minimal state needed to resume an authenticated
// session across process restarts: the cookie values the server handed out
// plus the last URL it left us on. It must round-trip through JSON without
// losing either.
type SessionState struct {
	Cookies map[string]string `json:"cookies"`
	LastURL string            `json:"url,omitempty"`
}

func NewSessionState() SessionState {
	return SessionState{Cookies: map[string]string{}}
}

func (s SessionState) Empty() bool {
	return len(s.Cookies) == 0 && s.LastURL == ""
}

func (s SessionState) Clone() SessionState {
	cookies := make(map[string]string, len(s.Cookies))
	for name, value := range s.Cookies {
		cookies[name] = value
	}

	return SessionState{Cookies: cookies, LastURL: s.LastURL}
}
