package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paysponge/spongewallet-go/models"
)

// Args is the argument bag of one tool call.
type Args map[string]interface{}

func parseArgs(input interface{}) (Args, error) {
	switch v := input.(type) {
	case nil:
		return Args{}, nil
	case Args:
		return copyArgs(v), nil
	case map[string]interface{}:
		return copyArgs(v), nil
	case json.RawMessage:
		return decodeArgs(v)
	case []byte:
		return decodeArgs(v)
	case string:
		return decodeArgs([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, models.Invalid("tool input is not serializable: %v", err)
		}
		return decodeArgs(raw)
	}
}

func copyArgs(src map[string]interface{}) Args {
	args := make(Args, len(src))
	for k, v := range src {
		args[k] = v
	}
	return args
}

func decodeArgs(raw []byte) (Args, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Args{}, nil
	}
	var args Args
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, models.Invalid("tool input must be a JSON object: %v", err)
	}
	if args == nil {
		return Args{}, nil
	}
	return args, nil
}

// alias moves the first present alias into canonical unless canonical is already set.
func (a Args) alias(canonical string, aliases ...string) {
	if v, ok := a[canonical]; ok && v != nil {
		return
	}
	for _, name := range aliases {
		if v, ok := a[name]; ok && v != nil {
			a[canonical] = v
			return
		}
	}
}

// decode fills target, a pointer to an argument struct, from the bag.
func (a Args) decode(target interface{}) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return models.Invalid("invalid tool arguments: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return models.Invalid("invalid tool arguments: %v", err)
	}
	return nil
}

// Number accepts a JSON number or a numeric string and keeps its text.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a number or numeric string, got %s", data)
	}
	*n = Number(num.String())
	return nil
}

func (n Number) String() string {
	return string(n)
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// Int parses a whole number. An empty Number yields nil.
func (n Number) Int() (*int, error) {
	if n == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil || !d.IsInteger() {
		return nil, models.Invalid("expected a whole number, got %q", string(n))
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return nil, models.Invalid("number %s is out of range", string(n))
	}
	v := int(d.IntPart())
	return &v, nil
}

// Flag accepts a JSON boolean or the strings "true" and "false".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true":
		*f = true
	case "false", "", "null":
		*f = false
	default:
		return fmt.Errorf("expected a boolean, got %s", data)
	}
	return nil
}

// ChainList accepts ["base","solana"] or "base,solana".
type ChainList []models.Chain

func (c *ChainList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return fmt.Errorf("expected a list of chains, got %s", data)
		}
		names = strings.Split(joined, ",")
	}

	chains := make(ChainList, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			chains = append(chains, models.Chain(name))
		}
	}
	*c = chains
	return nil
}
