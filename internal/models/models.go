package models

// Entry is one duration expression read from an input source
type Entry struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Input  string `json:"input"`
}

// Issue describes why an entry failed to parse
type Issue struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Offset  int    `json:"offset"` // Character offset within Input
	Column  int    `json:"column"` // 1-based, Offset + 1
}

// Result is the outcome of evaluating a single entry
type Result struct {
	Source    string `json:"source"`
	Line      int    `json:"line"`
	Input     string `json:"input"`
	Seconds   int64  `json:"seconds"`
	Canonical string `json:"canonical,omitempty"`
	Human     string `json:"human,omitempty"`
	Error     *Issue `json:"error,omitempty"`
}

// Valid reports whether the entry parsed successfully
func (r Result) Valid() bool {
	return r.Error == nil
}
