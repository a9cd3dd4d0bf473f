package mip65

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// FetchWad retrieves a JSON document over HTTP and extracts a single
// fixed-point figure from it with a JSONPath expression. Reporting agents
// publish NAV observations in whatever JSON shape their custodian emits;
// the path makes the extraction configurable instead of hardcoding one
// feed's layout.
func FetchWad(client *http.Client, addr, path string) (Wad, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Wad{}, fmt.Errorf("error in wget %q: %w", addr, err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Wad{}, fmt.Errorf("error evaluating %q on %q: %w", path, addr, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case float64:
		return W(v), nil
	case string:
		// some feeds quote their numbers, with comma decimal separators
		v = strings.ReplaceAll(v, ",", ".")
		v = strings.ReplaceAll(v, " ", "")
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return Wad{}, fmt.Errorf("value at %q is an invalid number %q: %w", path, v, err)
		}
		return ParseWad(v)
	default:
		return Wad{}, fmt.Errorf("value at %q is neither a number nor a string: %v", path, jval)
	}
}
