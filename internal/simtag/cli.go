package simtag

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/musiguello/logixsim/internal/simerr"
)

// ParseCLIArg parses a single positional tag-definition argument of the
// form NAME:TYPE[dim1][dim2][dim3]. NAME is 1-40 bytes excluding ':', '[',
// ']', and whitespace. Missing [dim] means scalar; a present dimension
// must be a positive decimal integer.
func ParseCLIArg(arg string) (*Tag, error) {
	colon := strings.IndexByte(arg, ':')
	if colon <= 0 {
		return nil, simerr.Newf(simerr.BadParam, "tag definition %q missing NAME:TYPE", arg)
	}
	name := arg[:colon]
	if err := validateName(name); err != nil {
		return nil, err
	}

	rest := arg[colon+1:]
	typeName, dimStrs, err := splitTypeAndDims(rest)
	if err != nil {
		return nil, simerr.Wrap(simerr.BadParam, err, "tag definition "+arg)
	}

	typ, err := ParseType(typeName)
	if err != nil {
		return nil, err
	}

	dims := make([]int, 0, len(dimStrs))
	for _, ds := range dimStrs {
		n, err := strconv.Atoi(ds)
		if err != nil || n <= 0 {
			return nil, simerr.Newf(simerr.BadParam, "tag definition %q has invalid dimension %q", arg, ds)
		}
		dims = append(dims, n)
	}
	if len(dims) > 3 {
		return nil, simerr.Newf(simerr.BadParam, "tag definition %q has more than 3 dimensions", arg)
	}

	return New(name, typ, dims), nil
}

func validateName(name string) error {
	if len(name) < 1 || len(name) > 40 {
		return simerr.Newf(simerr.BadParam, "tag name %q must be 1-40 bytes", name)
	}
	for _, r := range name {
		if r == ':' || r == '[' || r == ']' || unicode.IsSpace(r) {
			return simerr.Newf(simerr.BadParam, "tag name %q contains a disallowed character", name)
		}
	}
	return nil
}

// splitTypeAndDims splits "TYPE[dim1][dim2][dim3]" into "TYPE" and the
// dimension strings in order.
func splitTypeAndDims(s string) (string, []string, error) {
	bracket := strings.IndexByte(s, '[')
	if bracket < 0 {
		if s == "" {
			return "", nil, simerr.New(simerr.BadParam, "missing TYPE")
		}
		return s, nil, nil
	}

	typeName := s[:bracket]
	if typeName == "" {
		return "", nil, simerr.New(simerr.BadParam, "missing TYPE")
	}

	var dims []string
	rest := s[bracket:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, simerr.Newf(simerr.BadParam, "malformed dimension list %q", s)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, simerr.Newf(simerr.BadParam, "unterminated dimension in %q", s)
		}
		dims = append(dims, rest[1:end])
		rest = rest[end+1:]
	}
	return typeName, dims, nil
}
