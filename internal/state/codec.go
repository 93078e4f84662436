package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// The .skp wire format: one line per stroke, comma-separated point
// groups within a line, and 7 space-separated fields per point in the
// fixed order "x y z r g b thickness". Alpha is not persisted; loading
// always reconstructs fully opaque points. The file content is the wire
// format verbatim, with no header or version tag.

// FormatError reports malformed persisted sketch data. Line is the
// 1-based stroke line the error was found on, or 0 for document-level
// problems.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return "sketch format: " + e.Msg
	}
	return fmt.Sprintf("sketch format: line %d: %s", e.Line, e.Msg)
}

const pointFields = 7

// Serialize renders a stroke list in the wire format. The output
// round-trips through Deserialize up to float formatting, with alpha
// normalized to 255.
func Serialize(strokes []Stroke) string {
	var b strings.Builder
	for i, s := range strokes {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, pt := range s {
			if j > 0 {
				b.WriteByte(',')
			}
			writePoint(&b, pt)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt StrokePoint) {
	b.WriteString(strconv.FormatFloat(pt.Position.X, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(pt.Position.Y, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(pt.Position.Z, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(pt.Color.R)))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(pt.Color.G)))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(pt.Color.B)))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(pt.Thickness, 'g', -1, 64))
}

// Deserialize parses wire-format text into a fresh stroke list. On any
// malformed token, wrong field arity, or an empty document it returns a
// *FormatError and no strokes; it never partially populates anything the
// caller already holds.
func Deserialize(text string) ([]Stroke, error) {
	if text == "" {
		return nil, &FormatError{Msg: "empty document"}
	}
	lines := strings.Split(text, "\n")
	strokes := make([]Stroke, 0, len(lines))
	for i, line := range lines {
		stroke, err := parseStrokeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, stroke)
	}
	return strokes, nil
}

func parseStrokeLine(lineNo int, line string) (Stroke, error) {
	groups := strings.Split(line, ",")
	stroke := make(Stroke, 0, len(groups))
	for _, group := range groups {
		pt, err := parsePoint(lineNo, group)
		if err != nil {
			return nil, err
		}
		stroke = append(stroke, pt)
	}
	return stroke, nil
}

func parsePoint(lineNo int, group string) (StrokePoint, error) {
	fields := strings.Split(group, " ")
	if len(fields) != pointFields {
		return StrokePoint{}, &FormatError{
			Line: lineNo,
			Msg:  fmt.Sprintf("point %q has %d fields, want %d", group, len(fields), pointFields),
		}
	}

	var pos [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return StrokePoint{}, badField(lineNo, fields[i])
		}
		pos[i] = v
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(fields[3+i], 10, 8)
		if err != nil {
			return StrokePoint{}, badField(lineNo, fields[3+i])
		}
		rgb[i] = uint8(v)
	}

	thickness, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return StrokePoint{}, badField(lineNo, fields[6])
	}

	return StrokePoint{
		Position:  Vec3{X: pos[0], Y: pos[1], Z: pos[2]},
		Color:     color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255},
		Thickness: thickness,
	}, nil
}

func badField(lineNo int, field string) *FormatError {
	return &FormatError{Line: lineNo, Msg: fmt.Sprintf("malformed value %q", field)}
}
