// Package render turns raw API responses into terminal output. It is a pure
// projection: nothing is filtered, reordered or masked here. Masking secrets
// is the caller's job.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Format constants matching --format flag values. Any value other than
// FormatJSON renders as FormatPretty.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var keyColor = color.New(color.FgCyan).SprintFunc()

// Format renders data in the given mode. nil data renders as "".
func Format(data json.RawMessage, mode string) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	var err error
	if mode == FormatJSON {
		err = json.Indent(&buf, data, "", "  ")
	} else {
		err = renderPretty(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("rendering response: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Write renders data to w followed by a newline. Nothing is written for nil
// data.
func Write(w io.Writer, data json.RawMessage, mode string) error {
	s, err := Format(data, mode)
	if err != nil || s == "" {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// ─── Pretty ───────────────────────────────────────────────────────────────────

// prettyPrinter walks the JSON token stream so object keys keep the order
// the server sent them in.
type prettyPrinter struct {
	w   io.Writer
	dec *json.Decoder
}

func renderPretty(w io.Writer, data json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	p := &prettyPrinter{w: w, dec: dec}
	return p.value("", 0)
}

// value renders the next value in the stream. label is "key:" for object
// members, "[n]" for array elements and "" at the top level.
func (p *prettyPrinter) value(label string, depth int) error {
	tok, err := p.dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		p.line(depth, label, scalar(tok))
		return nil
	}

	if !p.dec.More() {
		if _, err := p.dec.Token(); err != nil {
			return err
		}
		p.line(depth, label, string(delim)+closing(delim))
		return nil
	}

	if label != "" {
		p.line(depth, label, "")
		depth++
	}

	for i := 1; p.dec.More(); i++ {
		if delim == '{' {
			kt, err := p.dec.Token()
			if err != nil {
				return err
			}
			key, _ := kt.(string)
			err = p.value(keyColor(key)+":", depth)
			if err != nil {
				return err
			}
			continue
		}
		if err := p.value(fmt.Sprintf("[%d]", i), depth); err != nil {
			return err
		}
	}
	_, err = p.dec.Token()
	return err
}

func (p *prettyPrinter) line(depth int, label, value string) {
	indent := strings.Repeat("  ", depth)
	switch {
	case label == "":
		fmt.Fprintf(p.w, "%s%s\n", indent, value)
	case value == "":
		fmt.Fprintf(p.w, "%s%s\n", indent, label)
	default:
		fmt.Fprintf(p.w, "%s%s %s\n", indent, label, value)
	}
}

func closing(d json.Delim) string {
	if d == '{' {
		return "}"
	}
	return "]"
}

// scalar formats a non-container token for display.
func scalar(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case string:
		if v == "" {
			return `""`
		}
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// ─── Tables ───────────────────────────────────────────────────────────────────

// KVTable renders rows as a bordered, left-aligned table.
func KVTable(w io.Writer, headers []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
}
