package export

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"schoolfinder/schools"
)

// NotAvailable is rendered in place of absent optional fields so the
// exported table never contains empty cells.
const NotAvailable = "Not available"

// DefaultFilename is used when the caller supplies no usable filename.
const DefaultFilename = "schools.csv"

// headers is the fixed column set, in order. Columns are explicit rather
// than derived from whatever keys happen to be present.
var headers = []string{
	"School Name",
	"Address",
	"Type",
	"Number of Students",
	"Phone Number",
	"Principal Name",
	"Assistant Name",
	"Manager Email",
	"Assistant Email",
}

// ToCSV renders records as CSV text: one header row plus one row per record,
// comma-separated, newline-separated rows. Every value is quote-enclosed,
// with internal quotes doubled. Given zero records it returns empty output;
// the caller is responsible for not offering an empty download.
func ToCSV(records []schools.SchoolRecord) string {
	if len(records) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow(&sb, headers)
	for _, rec := range records {
		writeRow(&sb, rowValues(rec))
	}
	return sb.String()
}

// WriteCSV streams the CSV rendition of records to w. Zero records write
// nothing and report zero bytes.
func WriteCSV(w io.Writer, records []schools.SchoolRecord) (int, error) {
	return io.WriteString(w, ToCSV(records))
}

// ServeDownload writes records to w as a CSV attachment with a sanitized
// filename. Exporting zero records is rejected so the caller can surface a
// diagnostic instead of delivering an empty file.
func ServeDownload(w http.ResponseWriter, filename string, records []schools.SchoolRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to export")
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", SanitizeFilename(filename)))
	_, err := WriteCSV(w, records)
	return err
}

// SanitizeFilename ensures the download name ends with a .csv extension.
// Characters unsafe in filenames beyond that are the caller's concern.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}

// rowValues flattens a record into the fixed column order, substituting
// [NotAvailable] for absent optional fields.
func rowValues(rec schools.SchoolRecord) []string {
	return []string{
		rec.Name,
		rec.Address,
		rec.Type,
		strconv.Itoa(rec.StudentCount),
		orNotAvailable(rec.PhoneNumber),
		orNotAvailable(rec.PrincipalName),
		orNotAvailable(rec.AssistantName),
		orNotAvailable(rec.ManagerEmail),
		orNotAvailable(rec.AssistantEmail),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// writeRow appends one CSV row. Every field is quoted unconditionally;
// encoding/csv only quotes on demand, and the export contract requires all
// fields quote-enclosed.
func writeRow(sb *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(v, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
