package model

import "sync"

// UnknownCategory is the sentinel class registered lazily for values outside
// a fitted vocabulary. Once registered it is never removed.
const UnknownCategory = "unknown"

// CategoryEncoder maps the string values of one categorical feature to the
// integer codes assigned at training time. The vocabulary grows monotonically:
// the first unseen value registers the "unknown" sentinel at the next code,
// and every unseen value thereafter shares it.
//
// Encode is safe for concurrent use; the check-then-insert on the sentinel is
// guarded so parallel callers can never register it twice.
type CategoryEncoder struct {
	codes   map[string]int
	feature string
	classes []string
	grown   bool
	mu      sync.Mutex
}

// NewCategoryEncoder builds an encoder for feature from its fitted,
// training-time class list. Codes are assigned by position.
func NewCategoryEncoder(feature string, classes []string) *CategoryEncoder {
	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		codes[c] = i
	}
	return &CategoryEncoder{
		feature: feature,
		classes: append([]string(nil), classes...),
		codes:   codes,
	}
}

// Feature returns the feature name this encoder was fitted on.
func (e *CategoryEncoder) Feature() string {
	return e.feature
}

// Encode returns the integer code for value, registering the "unknown"
// sentinel on first contact with a value outside the vocabulary.
func (e *CategoryEncoder) Encode(value string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if code, ok := e.codes[value]; ok {
		return code
	}

	code, ok := e.codes[UnknownCategory]
	if !ok {
		code = len(e.classes)
		e.classes = append(e.classes, UnknownCategory)
		e.codes[UnknownCategory] = code
		e.grown = true
	}
	return code
}

// Classes returns a snapshot of the current vocabulary in code order.
func (e *CategoryEncoder) Classes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.classes...)
}

// Grown reports whether the vocabulary grew since the encoder was loaded,
// i.e. whether the sentinel was registered during this run.
func (e *CategoryEncoder) Grown() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grown
}

// EncoderSet maps feature name to its fitted encoder.
type EncoderSet map[string]*CategoryEncoder
