package surface

import (
	"fmt"
	"strconv"
	"strings"
)

// Font is the subset of the CSS font shorthand the backend emits:
// "[italic] [bold] <size>px <family>".
type Font struct {
	Size   float64
	Bold   bool
	Italic bool
	Family string
}

// String formats the font as a CSS font shorthand.
func (f Font) String() string {
	var sb strings.Builder
	if f.Italic {
		sb.WriteString("italic ")
	}
	if f.Bold {
		sb.WriteString("bold ")
	}
	sb.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	sb.WriteString("px ")
	sb.WriteString(f.Family)
	return sb.String()
}

// ParseFont parses the shorthand produced by Font.String.
func ParseFont(s string) (Font, error) {
	var f Font
	fields := strings.Fields(s)
	for i, field := range fields {
		switch {
		case field == "italic" || field == "oblique":
			f.Italic = true
		case field == "bold" || field == "700":
			f.Bold = true
		case field == "normal":
		case strings.HasSuffix(field, "px"):
			size, err := strconv.ParseFloat(strings.TrimSuffix(field, "px"), 64)
			if err != nil || size <= 0 {
				return Font{}, fmt.Errorf("%w: size %q", ErrInvalidFont, field)
			}
			f.Size = size
			f.Family = strings.Join(fields[i+1:], " ")
			if f.Family == "" {
				return Font{}, fmt.Errorf("%w: missing family in %q", ErrInvalidFont, s)
			}
			return f, nil
		default:
			return Font{}, fmt.Errorf("%w: unexpected %q", ErrInvalidFont, field)
		}
	}
	return Font{}, fmt.Errorf("%w: missing size in %q", ErrInvalidFont, s)
}
