package domain

// Credentials carry the operator's Doctolib login. The password lives in
// memory only; it is never written to the session file.
type Credentials struct {
	Username string
	Password string
}
