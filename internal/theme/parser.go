package theme

import (
	"bufio"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/example/glyphpad/internal/config"
)

// Parse reads a theme definition from an io.Reader.
// The format is one "Key: colour" pair per line, where Key is a Theme field
// name and colour is anything config.ParseColor accepts. Keys missing from
// the file keep their Default value.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)

	val := reflect.ValueOf(t).Elem()
	rgba := reflect.TypeOf(color.RGBA{})

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "Name" {
			t.Name = value
			continue
		}

		field := val.FieldByName(key)
		if !field.IsValid() || field.Type() != rgba {
			continue // Unknown field, ignore for forward compatibility
		}
		col, err := config.ParseColor(value)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid color for %s", lineNo, key)
		}
		field.Set(reflect.ValueOf(col))
	}

	return t, errors.Wrap(scanner.Err(), "read theme")
}
