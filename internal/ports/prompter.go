package ports

// Prompter is the interactive-terminal capability injected into selection
// and authentication logic so neither needs a real terminal under test.
type Prompter interface {
	// Interactive reports whether a human can actually answer prompts.
	Interactive() bool
	// ChooseIndex presents options and returns a chosen index in [0, len).
	// Implementations re-prompt on invalid input rather than failing.
	ChooseIndex(label string, options []string) (int, error)
	ReadLine(label string) (string, error)
	ReadSecret(label string) (string, error)
}
