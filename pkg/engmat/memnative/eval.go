package memnative

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultEvaluator understands a small slice of MATLAB syntax, enough to
// drive the wrappers end to end:
//
//	x = 3              scalar assignment (echoed)
//	m = [1 2; 3 4];    matrix literal, trailing ';' suppresses the echo
//	y = m'             copy with optional transpose
//	m                  echo a variable
//	disp('text')       print text
//	disp(m)            print values without the name header
//	clear / clear a b  remove variables
func DefaultEvaluator(ws *Workspace, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	quiet := strings.HasSuffix(expr, ";")
	expr = strings.TrimSpace(strings.TrimSuffix(expr, ";"))
	if expr == "" {
		return "", nil
	}

	switch {
	case expr == "clear" || strings.HasPrefix(expr, "clear "):
		names := strings.Fields(strings.TrimPrefix(expr, "clear"))
		if len(names) == 0 {
			ws.Clear()
		}
		for _, name := range names {
			ws.Delete(name)
		}
		return "", nil

	case strings.HasPrefix(expr, "disp(") && strings.HasSuffix(expr, ")"):
		arg := strings.TrimSpace(expr[len("disp(") : len(expr)-1])
		if len(arg) >= 2 && arg[0] == '\'' && arg[len(arg)-1] == '\'' {
			return arg[1:len(arg)-1] + "\n", nil
		}
		v, err := evalValue(ws, arg)
		if err != nil {
			return "", err
		}
		return v.body(), nil
	}

	name, rhs, assign := strings.Cut(expr, "=")
	if !assign {
		v, err := evalValue(ws, expr)
		if err != nil {
			return "", err
		}
		if isIdent(expr) {
			name = expr
		} else {
			name = "ans"
			ws.SetDoubles(name, v.rows, v.cols, v.data)
		}
		if quiet {
			return "", nil
		}
		return v.echo(name), nil
	}

	name = strings.TrimSpace(name)
	if !isIdent(name) {
		return "", fmt.Errorf("invalid assignment target %q", name)
	}
	v, err := evalValue(ws, strings.TrimSpace(rhs))
	if err != nil {
		return "", err
	}
	ws.SetDoubles(name, v.rows, v.cols, v.data)
	if quiet {
		return "", nil
	}
	return v.echo(name), nil
}

// value is a column-major double matrix.
type value struct {
	rows, cols int
	data       []float64
}

func (v value) at(r, c int) float64 { return v.data[c*v.rows+r] }

func (v value) transpose() value {
	t := value{rows: v.cols, cols: v.rows, data: make([]float64, len(v.data))}
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			t.data[r*t.rows+c] = v.at(r, c)
		}
	}
	return t
}

func (v value) body() string {
	var b strings.Builder
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			fmt.Fprintf(&b, "%10s", strconv.FormatFloat(v.at(r, c), 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (v value) echo(name string) string {
	if v.rows == 0 || v.cols == 0 {
		return fmt.Sprintf("\n%s =\n\n     []\n\n", name)
	}
	return fmt.Sprintf("\n%s =\n\n%s\n", name, v.body())
}

func evalValue(ws *Workspace, src string) (value, error) {
	src = strings.TrimSpace(src)
	if strings.HasSuffix(src, "'") {
		v, err := evalValue(ws, strings.TrimSuffix(src, "'"))
		if err != nil {
			return value{}, err
		}
		return v.transpose(), nil
	}
	if strings.HasPrefix(src, "[") && strings.HasSuffix(src, "]") {
		return parseMatrix(src[1 : len(src)-1])
	}
	if f, err := strconv.ParseFloat(src, 64); err == nil {
		return value{rows: 1, cols: 1, data: []float64{f}}, nil
	}
	if isIdent(src) {
		rows, cols, data, ok := ws.Doubles(src)
		if !ok {
			return value{}, fmt.Errorf("undefined function or variable '%s'", src)
		}
		return value{rows: rows, cols: cols, data: data}, nil
	}
	return value{}, fmt.Errorf("unsupported expression %q", src)
}

func parseMatrix(body string) (value, error) {
	var rows [][]float64
	for _, line := range strings.Split(body, ";") {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return value{}, fmt.Errorf("bad matrix element %q", f)
			}
			row[i] = x
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return value{}, fmt.Errorf("dimensions of arrays being concatenated are not consistent")
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return value{}, nil
	}
	v := value{rows: len(rows), cols: len(rows[0]), data: make([]float64, len(rows)*len(rows[0]))}
	for r, row := range rows {
		for c, x := range row {
			v.data[c*v.rows+r] = x
		}
	}
	return v, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return unicode.IsLetter(rune(s[0]))
}
