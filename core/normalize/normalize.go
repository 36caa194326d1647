package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"schoolfinder/schools"
)

// Mode selects the validation strictness policy applied during per-item
// mapping.
type Mode int

const (
	// ModeLenient replaces missing or mistyped required fields with sentinel
	// placeholders during mapping and then filters placeholder-bearing
	// entries out of the final result. No error is raised; valid entries in
	// the same batch are preserved. This is the production default: a single
	// malformed entry should not discard an otherwise-useful batch.
	ModeLenient Mode = iota

	// ModeStrict fails the whole batch with a [KindInvalidEntry] error as
	// soon as any required field has the wrong type. Useful for diagnostics
	// and testing.
	ModeStrict
)

// DefaultMaxRepairPasses caps the stray-token repair loop. Typical inputs
// converge in a handful of passes; the cap keeps adversarial content from
// turning the textual fixed-point search into a liveness problem.
const DefaultMaxRepairPasses = 10

var (
	// fenceRe matches a fenced code block spanning the entire trimmed text.
	// Partial or inline fences are deliberately left untouched.
	fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

	// strayRe matches one or more runs of non-ASCII characters sitting
	// between the last character of a JSON token (closing quote, digit, or
	// the final letter of true/false/null) and the following structural
	// character.
	strayRe = regexp.MustCompile(`(["0-9el])\s*(?:[^\x00-\x7F]+\s*)+([,\}\]])`)
)

// Sentinel placeholders substituted for invalid required fields in lenient
// mode. They never appear in a returned record: any entry still carrying one
// after mapping is filtered out.
const (
	sentinelAddress = "Address not provided"
	sentinelType    = "Type not specified"
)

func sentinelName(index int) string {
	return fmt.Sprintf("Unnamed School %d", index+1)
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMode sets the validation strictness policy. Default: [ModeLenient].
func WithMode(m Mode) Option {
	return func(n *Normalizer) { n.mode = m }
}

// WithJSONRepair enables a jsonrepair fallback: when the cleaned text still
// fails the strict JSON parse, the text is run through jsonrepair once and
// parsed again. Disabled by default so a parse failure stays fatal.
func WithJSONRepair() Option {
	return func(n *Normalizer) { n.jsonRepair = true }
}

// WithMaxRepairPasses overrides the stray-token repair iteration cap.
// Values <= 0 fall back to [DefaultMaxRepairPasses].
func WithMaxRepairPasses(passes int) Option {
	return func(n *Normalizer) { n.maxRepairPasses = passes }
}

// Normalizer turns raw model text into validated school records. It is a
// pure, synchronous computation over an in-memory string with no side
// effects, so a single instance is safe for concurrent use.
type Normalizer struct {
	mode            Mode
	jsonRepair      bool
	maxRepairPasses int
}

// New returns a Normalizer with lenient validation and repair disabled
// unless configured otherwise.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		mode:            ModeLenient,
		maxRepairPasses: DefaultMaxRepairPasses,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize runs the full pipeline: fence stripping, stray-token repair,
// strict JSON parse, shape check, and per-item mapping. An empty result list
// is legal when the source contained zero valid entries; it is not an error.
// Failures are returned as *Error so callers can match on [Kind].
func (n *Normalizer) Normalize(raw string) ([]schools.SchoolRecord, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &Error{Kind: KindEmptyResponse}
	}

	text = StripFence(text)
	text = RepairStrayTokens(text, n.maxRepairPasses)

	parsed, perr := n.parse(text)
	if perr != nil {
		return nil, perr
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, &Error{
			Kind:   KindUnexpectedShape,
			Detail: fmt.Sprintf("expected a JSON array, got %s", jsonTypeName(parsed)),
		}
	}

	if n.mode == ModeStrict {
		return mapStrict(items)
	}
	return mapLenient(items), nil
}

// StripFence removes a triple-backtick code fence (optionally tagged "json")
// wrapping s. The fence must span the entire trimmed string; inline fences
// are left untouched.
func StripFence(s string) string {
	if m := fenceRe.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return m[1]
	}
	return s
}

// RepairStrayTokens removes runs of non-ASCII characters inserted between a
// JSON value token and its following structural character (",", "}", "]").
// The scan repeats until the text stops changing, capped at maxPasses
// (<= 0 selects [DefaultMaxRepairPasses]). The repair is idempotent: once a
// pass removes nothing, further passes are no-ops.
func RepairStrayTokens(text string, maxPasses int) string {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxRepairPasses
	}
	for i := 0; i < maxPasses; i++ {
		cleaned := strayRe.ReplaceAllString(text, "${1}${2}")
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
	return text
}

// parse attempts the strict JSON parse, optionally falling back to a single
// jsonrepair pass when enabled. A failure carries an excerpt of the text for
// diagnosis.
func (n *Normalizer) parse(text string) (any, *Error) {
	var parsed any
	err := json.Unmarshal([]byte(text), &parsed)
	if err == nil {
		return parsed, nil
	}

	if n.jsonRepair {
		if repaired, rerr := jsonrepair.JSONRepair(text); rerr == nil {
			if jerr := json.Unmarshal([]byte(repaired), &parsed); jerr == nil {
				return parsed, nil
			}
		}
	}

	return nil, &Error{Kind: KindMalformedJSON, Excerpt: excerpt(text), Err: err}
}

// mapStrict converts every array element or fails on the first element whose
// required fields do not validate.
func mapStrict(items []any) ([]schools.SchoolRecord, error) {
	records := make([]schools.SchoolRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &Error{
				Kind:   KindInvalidEntry,
				Index:  i,
				Detail: fmt.Sprintf("expected an object, got %s", jsonTypeName(item)),
			}
		}

		name, okName := stringField(obj, "name")
		address, okAddress := stringField(obj, "address")
		schoolType, okType := stringField(obj, "type")
		count, okCount := countField(obj)

		if !okName || !okAddress || !okType || !okCount {
			return nil, &Error{
				Kind:  KindInvalidEntry,
				Index: i,
				Detail: fmt.Sprintf("name=%v address=%v type=%v studentCount=%v",
					obj["name"], obj["address"], obj["type"], obj["studentCount"]),
			}
		}

		records = append(records, buildRecord(obj, name, address, schoolType, count))
	}
	return records, nil
}

// mapLenient substitutes sentinel placeholders for invalid required fields,
// then filters out every entry that still carries one. Non-object elements
// are dropped the same way.
func mapLenient(items []any) []schools.SchoolRecord {
	records := make([]schools.SchoolRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		name, okName := stringField(obj, "name")
		if !okName {
			name = sentinelName(i)
		}
		address, okAddress := stringField(obj, "address")
		if !okAddress {
			address = sentinelAddress
		}
		schoolType, okType := stringField(obj, "type")
		if !okType {
			schoolType = sentinelType
		}
		count, okCount := countField(obj)

		if name == sentinelName(i) || address == sentinelAddress || schoolType == sentinelType || !okCount {
			continue
		}

		records = append(records, buildRecord(obj, name, address, schoolType, count))
	}
	return records
}

// buildRecord assembles a record from validated required fields plus the
// optional fields. Missing, null, or empty optional values normalize to
// absent (empty string, omitted from serialized output).
func buildRecord(obj map[string]any, name, address, schoolType string, count int) schools.SchoolRecord {
	return schools.SchoolRecord{
		Name:           name,
		Address:        address,
		Type:           schoolType,
		StudentCount:   count,
		PhoneNumber:    optionalField(obj, "phoneNumber"),
		PrincipalName:  optionalField(obj, "principalName"),
		AssistantName:  optionalField(obj, "assistantName"),
		ManagerEmail:   optionalField(obj, "managerEmail"),
		AssistantEmail: optionalField(obj, "assistantEmail"),
	}
}

// stringField extracts a required text field: present, a string, and
// non-empty after trimming.
func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// countField extracts studentCount: a JSON number that is a non-negative
// whole value.
func countField(obj map[string]any) (int, bool) {
	v, ok := obj["studentCount"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// optionalField extracts an optional text field; anything that is not a
// non-empty string normalizes to absent.
func optionalField(obj map[string]any, key string) string {
	s, _ := stringField(obj, key)
	return s
}

// excerpt returns the first chunk of s for parse-error diagnostics,
// rune-safe so multi-byte characters are never split.
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) > excerptLen {
		return string(runes[:excerptLen])
	}
	return s
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
