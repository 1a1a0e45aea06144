// Package quasijson pulls javascript object/array literals that are assigned
// to a named variable (`var name = {...};`) out of a script and decodes them
// as JSON.
//
// The literals are "almost" JSON: object keys may be bare identifiers. Each
// stage (Locate, NormalizeKeys, Parse) can be called on its own so the
// heuristics can be tested in isolation.
package quasijson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var ErrDataParse = errors.New("quasijson: data parse error")

type Stage string

const (
	StageLocate Stage = "locate"
	StageParse  Stage = "parse"
	StageShape  Stage = "shape"
)

// DataParseError is returned when the literal assigned to Variable could not
// be found, normalized or decoded.
type DataParseError struct {
	Variable string
	Stage    Stage
	Err      error
}

func (e *DataParseError) Error() string {
	var msg string
	switch e.Stage {
	case StageLocate:
		msg = fmt.Sprintf("failed to extract %q from data script", e.Variable)
	case StageShape:
		msg = fmt.Sprintf("unexpected shape of %q in data script", e.Variable)
	default:
		msg = fmt.Sprintf("failed to parse %q from data script", e.Variable)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataParseError) Unwrap() error {
	return e.Err
}

func (e *DataParseError) Is(target error) bool {
	return target == ErrDataParse
}

func assignmentRegex(name string) *regexp.Regexp {
	// the literal must close on a line of its own (`]` or `}`) directly
	// followed by the statement terminator.
	return regexp.MustCompile(
		`(?ms)^var ` + regexp.QuoteMeta(name) + ` = (.+?\r?\n[\]}]);\r?$`,
	)
}

// Locate returns the raw literal assigned to `name`.
func Locate(source, name string) (string, error) {
	groups := assignmentRegex(name).FindStringSubmatch(source)
	if len(groups) < 2 {
		return "", &DataParseError{Variable: name, Stage: StageLocate}
	}
	return groups[1], nil
}

var keyRegex = regexp.MustCompile(
	`(?m)^([ \t]*)(?:"([^"\r\n]+)"|([^\s"\[\]{},:][^"\r\n:]*?))[ \t]*:`,
)

// NormalizeKeys rewrites every `key:` at the start of a line into `"key" :`.
// Keys that are already quoted come out unchanged, so running it twice yields
// the same text.
func NormalizeKeys(literal string) string {
	return keyRegex.ReplaceAllString(literal, `$1"$2$3" :`)
}

// Parse decodes normalized text. Numbers are kept as json.Number so that
// numeric codes keep their literal spelling.
func Parse(normalized string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(normalized))
	dec.UseNumber()

	var out any
	err := dec.Decode(&out)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after literal")
	}
	return out, nil
}

// Extract locates, normalizes and decodes the literal assigned to `name`.
func Extract(source, name string) (any, error) {
	literal, err := Locate(source, name)
	if err != nil {
		return nil, err
	}
	value, err := Parse(NormalizeKeys(literal))
	if err != nil {
		return nil, &DataParseError{Variable: name, Stage: StageParse, Err: err}
	}
	return value, nil
}

type Entry struct {
	Key   string
	Value any
}

// ExtractEntries is like Extract but requires the literal to be an object and
// returns its members in source order.
func ExtractEntries(source, name string) ([]Entry, error) {
	literal, err := Locate(source, name)
	if err != nil {
		return nil, err
	}
	entries, err := parseEntries(NormalizeKeys(literal))
	if err != nil {
		return nil, &DataParseError{Variable: name, Stage: StageParse, Err: err}
	}
	return entries, nil
}

func parseEntries(normalized string) ([]Entry, error) {
	dec := json.NewDecoder(strings.NewReader(normalized))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object literal, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value any
		err = dec.Decode(&value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after literal")
	}
	return entries, nil
}

// Pairs converts a `[[name, code], ...]` list into string pairs. Numeric
// members are rendered with their literal spelling.
func Pairs(value any) ([][2]string, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}

	out := make([][2]string, 0, len(list))
	for i, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) < 2 {
			return nil, fmt.Errorf("entry %d: expected a [name, code] pair, got %v", i, item)
		}
		name, err := scalarString(pair[0])
		if err != nil {
			return nil, fmt.Errorf("entry %d name: %w", i, err)
		}
		code, err := scalarString(pair[1])
		if err != nil {
			return nil, fmt.Errorf("entry %d code: %w", i, err)
		}
		out = append(out, [2]string{name, code})
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("expected a string or number, got %T", v)
}
