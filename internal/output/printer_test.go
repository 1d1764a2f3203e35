package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bigredeye/nbastats/internal/sportsdata"
)

func testStandings() sportsdata.Standings {
	return sportsdata.Standings{
		{"TeamID": json.Number("1"), "Key": "BOS", "Percentage": json.Number("0.744")},
		{"TeamID": json.Number("2"), "Key": "NYK", "Percentage": json.Number("0.61")},
		{"TeamID": json.Number("3"), "Key": "MIL", "Percentage": json.Number("0.59")},
	}
}

func TestPrintJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := NewPrinter(buf, FormatJSON, 0)

	if err := printer.PrintStandings(sportsdata.Standings{{"TeamID": json.Number("1"), "Wins": json.Number("50")}}); err != nil {
		t.Fatalf("Failed to print: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"TeamID": 1`) || !strings.Contains(out, `"Wins": 50`) {
		t.Fatalf("Numbers must be printed verbatim:\n%s", out)
	}
	if !strings.HasPrefix(out, "[\n") || !strings.HasSuffix(out, "]\n") {
		t.Fatalf("Expected indented array:\n%s", out)
	}

	parsed := []map[string]interface{}{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid json: %v", err)
	}
	if len(parsed) != 1 || parsed[0]["TeamID"] != float64(1) || parsed[0]["Wins"] != float64(50) {
		t.Fatalf("Unexpected parsed output: %+v", parsed)
	}
}

func TestPrintJSONPreview(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := NewPrinter(buf, FormatJSON, 1)

	if err := printer.PrintStandings(testStandings()); err != nil {
		t.Fatalf("Failed to print: %v", err)
	}

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"Key": "BOS"`)) || bytes.Contains(buf.Bytes(), []byte("NYK")) {
		t.Fatalf("Preview must contain only the first record:\n%s", out)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("... 2 more records\n")) {
		t.Fatalf("Missing preview trailer:\n%s", out)
	}
}

func TestPrintYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := NewPrinter(buf, FormatYAML, 2)

	if err := printer.PrintStandings(testStandings()); err != nil {
		t.Fatalf("Failed to print: %v", err)
	}

	expected := `- Key: BOS
  Percentage: 0.744
  TeamID: 1
- Key: NYK
  Percentage: 0.61
  TeamID: 2
... 1 more records
`
	if buf.String() != expected {
		t.Fatalf("Unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestPrintUnknownFormat(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, "xml", 0)
	if err := printer.PrintStandings(testStandings()); err == nil {
		t.Fatal("Expected error for unknown format")
	}
}

func TestPrintFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewPrinter(buf, FormatJSON, 0).PrintFailure(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Failed to fetch stats\n" {
		t.Fatalf("Unexpected output: %q", buf.String())
	}
}
