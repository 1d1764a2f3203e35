package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/bigredeye/nbastats/internal/sportsdata"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	FailureMessage = "Failed to fetch stats"
)

var prettyJSON = jsoniter.Config{SortMapKeys: true, EscapeHTML: false}.Froze()

type Printer struct {
	w       io.Writer
	format  string
	preview int
}

// NewPrinter prints at most preview records; preview <= 0 prints everything.
func NewPrinter(w io.Writer, format string, preview int) *Printer {
	return &Printer{
		w:       w,
		format:  strings.ToLower(format),
		preview: preview,
	}
}

func (p *Printer) PrintStandings(standings sportsdata.Standings) error {
	shown := standings
	if p.preview > 0 && len(standings) > p.preview {
		shown = standings[:p.preview]
	}

	var data []byte
	var err error
	switch p.format {
	case FormatYAML:
		data, err = yaml.Marshal(plain(shown))
	case FormatJSON, "":
		data, err = prettyJSON.MarshalIndent(shown, "", "  ")
		data = append(data, '\n')
	default:
		return errors.Errorf("Unknown output format %q", p.format)
	}
	if err != nil {
		return errors.Wrap(err, "Failed to encode standings")
	}

	if _, err := p.w.Write(data); err != nil {
		return err
	}
	if hidden := len(standings) - len(shown); hidden > 0 {
		_, err = fmt.Fprintf(p.w, "... %d more records\n", hidden)
	}
	return err
}

func (p *Printer) PrintFailure() error {
	_, err := fmt.Fprintln(p.w, FailureMessage)
	return err
}

// plain turns json.Number into int64/float64 so yaml does not quote numbers.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case sportsdata.Standings:
		res := make([]interface{}, len(v))
		for i, record := range v {
			res[i] = plain(record)
		}
		return res
	case sportsdata.Record:
		return plain(map[string]interface{}(v))
	case map[string]interface{}:
		res := make(map[string]interface{}, len(v))
		for key, value := range v {
			res[key] = plain(value)
		}
		return res
	case []interface{}:
		res := make([]interface{}, len(v))
		for i, value := range v {
			res[i] = plain(value)
		}
		return res
	default:
		return v
	}
}
