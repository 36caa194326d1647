package normalize

import "fmt"

// Kind classifies normalization failures so callers can branch on the
// failure mode instead of string-matching error messages.
type Kind int

const (
	// KindEmptyResponse means the model returned no text at all.
	KindEmptyResponse Kind = iota + 1

	// KindMalformedJSON means the text was not valid JSON after cleanup.
	// The error carries an excerpt of the offending text.
	KindMalformedJSON

	// KindUnexpectedShape means the text parsed as valid JSON but the top
	// level value was not an array.
	KindUnexpectedShape

	// KindInvalidEntry means a required field of one array element failed
	// validation. Only raised in strict mode; the error carries the element
	// index and the field values seen.
	KindInvalidEntry
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedJSON:
		return "malformed_json"
	case KindUnexpectedShape:
		return "unexpected_shape"
	case KindInvalidEntry:
		return "invalid_entry"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// excerptLen bounds the diagnostic excerpt included in malformed-JSON errors.
const excerptLen = 150

// Error is the typed failure returned by [Normalizer.Normalize]. Exactly one
// of Excerpt (malformed JSON) or Index/Detail (invalid entry) is meaningful,
// depending on Kind.
type Error struct {
	Kind    Kind
	Excerpt string // first ~150 characters of the text that failed to parse
	Index   int    // array index of the invalid entry (strict mode)
	Detail  string // human-readable field diagnostics
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyResponse:
		return "empty response from model"
	case KindMalformedJSON:
		if e.Err != nil {
			return fmt.Sprintf("response is not valid JSON: %v (excerpt: %q)", e.Err, e.Excerpt)
		}
		return fmt.Sprintf("response is not valid JSON (excerpt: %q)", e.Excerpt)
	case KindUnexpectedShape:
		return fmt.Sprintf("response is valid JSON but not an array: %s", e.Detail)
	case KindInvalidEntry:
		return fmt.Sprintf("entry %d failed validation: %s", e.Index, e.Detail)
	default:
		return fmt.Sprintf("normalization failed (%s)", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
