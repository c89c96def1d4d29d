package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var signaturePattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// ConstructFunctionABI builds a method from a signature such as "balanceOf(address owner)".
func ConstructFunctionABI(signature string) (*abi.Method, error) {
	name, inputs, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}
	method := abi.NewMethod(name, name, abi.Function, "", false, false, inputs, nil)
	return &method, nil
}

// ConstructEventABI builds an event from a human readable signature such as
// "Transfer(address indexed from, address indexed to, uint256 value)".
func ConstructEventABI(signature string) (*abi.Event, error) {
	name, inputs, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}
	event := abi.NewEvent(name, name, false, inputs)
	return &event, nil
}

// param is one parsed parameter. Tuples carry their fields in components
// and have a "tuple" type with any array suffix kept.
type param struct {
	name       string
	typ        string
	indexed    bool
	components []abi.ArgumentMarshaling
}

func parseSignature(signature string) (string, abi.Arguments, error) {
	matches := signaturePattern.FindStringSubmatch(strings.TrimSpace(signature))
	if matches == nil {
		return "", nil, fmt.Errorf("invalid signature format %q", signature)
	}
	params, err := parseParams(matches[2], "")
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse params of %q: %w", signature, err)
	}
	args := make(abi.Arguments, len(params))
	for i, p := range params {
		typ, err := abi.NewType(p.typ, "", p.components)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse type of param %d %q: %w", i, p.typ, err)
		}
		args[i] = abi.Argument{Name: p.name, Type: typ, Indexed: p.indexed}
	}
	return matches[1], args, nil
}

// parseParams reads a comma separated parameter list. Unnamed parameters are
// named by position behind fallbackPrefix.
func parseParams(list string, fallbackPrefix string) ([]param, error) {
	parts := splitTopLevel(list)
	params := make([]param, 0, len(parts))
	for i, part := range parts {
		p, err := parseParam(part, fmt.Sprintf("%s%d", fallbackPrefix, i))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func parseParam(raw string, fallbackName string) (param, error) {
	p := param{name: fallbackName}
	rest := raw
	if strings.HasPrefix(raw, "(") {
		end := closingParen(raw)
		if end < 0 {
			return param{}, fmt.Errorf("unbalanced tuple %q", raw)
		}
		fields, err := parseParams(raw[1:end], "field")
		if err != nil {
			return param{}, err
		}
		p.components = toArgumentMarshaling(fields)
		p.typ = "tuple"
		rest = raw[end+1:]
		for strings.HasPrefix(rest, "[") {
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return param{}, fmt.Errorf("unterminated array suffix in %q", raw)
			}
			p.typ += rest[:closing+1]
			rest = rest[closing+1:]
		}
	}

	tokens := strings.Fields(rest)
	if p.typ == "" {
		if len(tokens) == 0 {
			return param{}, fmt.Errorf("empty parameter")
		}
		p.typ, tokens = tokens[0], tokens[1:]
	}
	for _, token := range tokens {
		switch token {
		case "indexed":
			p.indexed = true
		case "memory", "calldata", "storage":
		default:
			p.name = token
		}
	}
	return p, nil
}

func toArgumentMarshaling(params []param) []abi.ArgumentMarshaling {
	out := make([]abi.ArgumentMarshaling, len(params))
	for i, p := range params {
		out[i] = abi.ArgumentMarshaling{Name: p.name, Type: p.typ, Components: p.components}
	}
	return out
}

// splitTopLevel splits on commas outside of parentheses.
func splitTopLevel(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(list[start:]))
}

// closingParen returns the index of the parenthesis closing s[0].
func closingParen(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
