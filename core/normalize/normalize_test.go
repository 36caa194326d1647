package normalize

import (
	"errors"
	"strings"
	"testing"

	"schoolfinder/schools"
)

const validBatch = `[{"name":"A","address":"1 Main","type":"Elementary School","studentCount":120}]`

func TestNormalizeSingleValidRecord(t *testing.T) {
	n := New()

	records, err := n.Normalize(validBatch)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if len(records) != 1 {
		t.Fatalf("Normalize() returned %d records, want 1", len(records))
	}

	want := schools.SchoolRecord{
		Name:         "A",
		Address:      "1 Main",
		Type:         "Elementary School",
		StudentCount: 120,
	}
	if records[0] != want {
		t.Errorf("Normalize() = %+v, want %+v", records[0], want)
	}
}

func TestNormalizeCopiesFieldsVerbatim(t *testing.T) {
	input := `[
		{"name":"Northside Elementary","address":"42 Oak Ave","type":"Elementary School","studentCount":310,"phoneNumber":"(555) 010-2233","principalName":"Dana Reyes","assistantName":"Kim Soto","managerEmail":"dreyes@example.org","assistantEmail":"ksoto@example.org"},
		{"name":"Hillcrest High","address":"9 Summit Rd","type":"High School","studentCount":1240}
	]`

	records, err := New().Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if len(records) != 2 {
		t.Fatalf("Normalize() returned %d records, want 2", len(records))
	}

	first := schools.SchoolRecord{
		Name:           "Northside Elementary",
		Address:        "42 Oak Ave",
		Type:           "Elementary School",
		StudentCount:   310,
		PhoneNumber:    "(555) 010-2233",
		PrincipalName:  "Dana Reyes",
		AssistantName:  "Kim Soto",
		ManagerEmail:   "dreyes@example.org",
		AssistantEmail: "ksoto@example.org",
	}
	if records[0] != first {
		t.Errorf("records[0] = %+v, want %+v", records[0], first)
	}
	if records[1].PhoneNumber != "" || records[1].PrincipalName != "" {
		t.Errorf("optional fields on minimal record should be absent, got %+v", records[1])
	}
}

func TestNormalizeFencedEqualsUnfenced(t *testing.T) {
	tests := []struct {
		name   string
		fenced string
	}{
		{name: "plain fence", fenced: "```\n" + validBatch + "\n```"},
		{name: "json tagged fence", fenced: "```json\n" + validBatch + "\n```"},
		{name: "fence without newlines", fenced: "```json" + validBatch + "```"},
		{name: "surrounding whitespace", fenced: "\n\n```json\n" + validBatch + "\n```\n  "},
	}

	n := New()
	want, err := n.Normalize(validBatch)
	if err != nil {
		t.Fatalf("Normalize(unfenced) error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.fenced)
			if err != nil {
				t.Fatalf("Normalize(fenced) error = %v, want nil", err)
			}
			if len(got) != len(want) || got[0] != want[0] {
				t.Errorf("Normalize(fenced) = %+v, want %+v", got, want)
			}
		})
	}
}

func TestStripFenceLeavesPartialFencesAlone(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "inline fence", input: `before ` + "```json\n[]\n```" + ` after`},
		{name: "opening fence only", input: "```json\n[]"},
		{name: "closing fence only", input: "[]\n```"},
		{name: "no fence", input: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.input); got != tt.input {
				t.Errorf("StripFence(%q) = %q, want input unchanged", tt.input, got)
			}
		})
	}
}

func TestRepairStrayTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "after string value",
			input: "[{\"name\":\"A\"✨,\"studentCount\":1}]",
			want:  `[{"name":"A","studentCount":1}]`,
		},
		{
			name:  "after number before closing brace",
			input: "[{\"studentCount\":120★}]",
			want:  `[{"studentCount":120}]`,
		},
		{
			name:  "after literal before closing bracket",
			input: "[true✦]",
			want:  `[true]`,
		},
		{
			name:  "multiple runs separated by spaces",
			input: "[{\"name\":\"A\"✨ ✨ ,\"x\":1}]",
			want:  `[{"name":"A","x":1}]`,
		},
		{
			name:  "clean input untouched",
			input: validBatch,
			want:  validBatch,
		},
		{
			name:  "non-ascii inside string content preserved",
			input: `[{"name":"École Centrale"}]`,
			want:  `[{"name":"École Centrale"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairStrayTokens(tt.input, 0); got != tt.want {
				t.Errorf("RepairStrayTokens() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairStrayTokensIsIdempotent(t *testing.T) {
	input := "[{\"name\":\"A\"✨,\"address\":\"1 Main\"★★,\"studentCount\":5✨}]"

	once := RepairStrayTokens(input, 0)
	twice := RepairStrayTokens(once, 0)
	if once != twice {
		t.Errorf("repair is not idempotent: first pass %q, second pass %q", once, twice)
	}
}

func TestRepairStrayTokensTerminatesOnAdversarialInput(t *testing.T) {
	// Deeply repeated stray runs must not hang: the pass cap bounds the
	// fixed-point search regardless of input.
	garbage := strings.Repeat("✨ ", 5000)
	input := `[{"n":1` + garbage + `}]`

	got := RepairStrayTokens(input, 3)
	if got == "" {
		t.Error("RepairStrayTokens() returned empty output")
	}
	if got != `[{"n":1}]` {
		t.Errorf("RepairStrayTokens() = %q, want %q", got, `[{"n":1}]`)
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
	}{
		{name: "empty input", input: "", wantKind: KindEmptyResponse},
		{name: "whitespace only", input: "  \n\t ", wantKind: KindEmptyResponse},
		{name: "not json", input: "not json at all", wantKind: KindMalformedJSON},
		{name: "truncated array", input: `[{"name":"A"`, wantKind: KindMalformedJSON},
		{name: "object instead of array", input: `{"not":"an array"}`, wantKind: KindUnexpectedShape},
		{name: "scalar instead of array", input: `42`, wantKind: KindUnexpectedShape},
		{name: "string instead of array", input: `"hello"`, wantKind: KindUnexpectedShape},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.input)
			if err == nil {
				t.Fatal("Normalize() error = nil, want error")
			}

			var nerr *Error
			if !errors.As(err, &nerr) {
				t.Fatalf("Normalize() error type = %T, want *Error", err)
			}
			if nerr.Kind != tt.wantKind {
				t.Errorf("error kind = %s, want %s", nerr.Kind, tt.wantKind)
			}
		})
	}
}

func TestNormalizeMalformedJSONCarriesExcerpt(t *testing.T) {
	longGarbage := "not json at all " + strings.Repeat("x", 500)

	_, err := New().Normalize(longGarbage)

	var nerr *Error
	if !errors.As(err, &nerr) {
		t.Fatalf("Normalize() error type = %T, want *Error", err)
	}
	if nerr.Excerpt == "" {
		t.Error("malformed JSON error carries no excerpt")
	}
	if len(nerr.Excerpt) > excerptLen {
		t.Errorf("excerpt length = %d, want <= %d", len(nerr.Excerpt), excerptLen)
	}
	if !strings.Contains(err.Error(), "not json at all") {
		t.Errorf("error message %q does not include the excerpt", err.Error())
	}
}

func TestNormalizeLenientDropsInvalidEntries(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{
			name:      "entry missing name is dropped",
			input:     `[{"address":"1 Main","type":"High School","studentCount":900},{"name":"B","address":"2 Main","type":"High School","studentCount":900}]`,
			wantCount: 1,
		},
		{
			name:      "entry with non-numeric count is dropped",
			input:     `[{"name":"A","address":"1 Main","type":"High School","studentCount":"many"},{"name":"B","address":"2 Main","type":"High School","studentCount":10}]`,
			wantCount: 1,
		},
		{
			name:      "entry with negative count is dropped",
			input:     `[{"name":"A","address":"1 Main","type":"High School","studentCount":-5}]`,
			wantCount: 0,
		},
		{
			name:      "entry with fractional count is dropped",
			input:     `[{"name":"A","address":"1 Main","type":"High School","studentCount":12.5}]`,
			wantCount: 0,
		},
		{
			name:      "non-object element is dropped",
			input:     `["just a string",{"name":"B","address":"2 Main","type":"High School","studentCount":10}]`,
			wantCount: 1,
		},
		{
			name:      "empty string required field is dropped",
			input:     `[{"name":"","address":"1 Main","type":"High School","studentCount":10}]`,
			wantCount: 0,
		},
		{
			name:      "all entries invalid yields empty list",
			input:     `[{"name":"A"},{"address":"1 Main"}]`,
			wantCount: 0,
		},
		{
			name:      "empty array yields empty list",
			input:     `[]`,
			wantCount: 0,
		},
	}

	n := New(WithMode(ModeLenient))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := n.Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize() error = %v, want nil (lenient mode never errors on bad entries)", err)
			}
			if len(records) != tt.wantCount {
				t.Errorf("Normalize() returned %d records, want %d", len(records), tt.wantCount)
			}
		})
	}
}

func TestNormalizeStrictFailsWholeBatch(t *testing.T) {
	input := `[{"name":"A","address":"1 Main","type":"High School","studentCount":10},{"address":"2 Main","type":"High School","studentCount":20}]`

	_, err := New(WithMode(ModeStrict)).Normalize(input)
	if err == nil {
		t.Fatal("Normalize() error = nil, want invalid entry error")
	}

	var nerr *Error
	if !errors.As(err, &nerr) {
		t.Fatalf("Normalize() error type = %T, want *Error", err)
	}
	if nerr.Kind != KindInvalidEntry {
		t.Errorf("error kind = %s, want %s", nerr.Kind, KindInvalidEntry)
	}
	if nerr.Index != 1 {
		t.Errorf("error index = %d, want 1", nerr.Index)
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error message %q does not identify the offending index", err.Error())
	}
}

func TestNormalizeOptionalFieldNormalization(t *testing.T) {
	input := `[{"name":"A","address":"1 Main","type":"High School","studentCount":10,"phoneNumber":"","principalName":null,"managerEmail":"  "}]`

	records, err := New().Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if len(records) != 1 {
		t.Fatalf("Normalize() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.PhoneNumber != "" || rec.PrincipalName != "" || rec.ManagerEmail != "" {
		t.Errorf("empty/null optional fields should normalize to absent, got %+v", rec)
	}
}

func TestNormalizeStrayTokensInFullPipeline(t *testing.T) {
	input := "```json\n[{\"name\":\"A\"✨,\"address\":\"1 Main\",\"type\":\"High School\",\"studentCount\":10★}]\n```"

	records, err := New().Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if len(records) != 1 {
		t.Fatalf("Normalize() returned %d records, want 1", len(records))
	}
	if records[0].Name != "A" || records[0].StudentCount != 10 {
		t.Errorf("Normalize() = %+v, want name A and studentCount 10", records[0])
	}
}

func TestNormalizeWithJSONRepair(t *testing.T) {
	// Trailing comma is invalid under the strict parse but recoverable by
	// the jsonrepair fallback.
	input := `[{"name":"A","address":"1 Main","type":"High School","studentCount":10,}]`

	if _, err := New().Normalize(input); err == nil {
		t.Error("Normalize() without repair should fail on trailing comma")
	}

	records, err := New(WithJSONRepair()).Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() with repair error = %v, want nil", err)
	}
	if len(records) != 1 {
		t.Errorf("Normalize() with repair returned %d records, want 1", len(records))
	}
}
