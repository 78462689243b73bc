package deviceprofile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	resourcePrefix = "resources:"
	groupsKey      = "groups"

	// DefaultResource is charged when a profile names no resources.
	DefaultResource = "accelerator"
)

var ErrInvalidDocument = errors.New("invalid device profile document")

// ValidateDocument checks the document is a JSON object and that any
// resource counts it carries are well formed.
func ValidateDocument(raw []byte) error {
	_, err := parseDeltas(raw)
	return err
}

// ResourceDeltas returns the quota deltas charged for one request against
// this profile. Kinds are lower-cased and summed across groups.
func (dp *DeviceProfile) ResourceDeltas() (map[string]int, error) {
	deltas, err := parseDeltas(dp.Document)
	if err != nil {
		return nil, fmt.Errorf("device profile %s: %w", dp.Name, err)
	}
	if len(deltas) == 0 {
		deltas[DefaultResource] = 1
	}
	return deltas, nil
}

func parseDeltas(raw []byte) (map[string]int, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: must be a JSON object", ErrInvalidDocument)
	}

	deltas := map[string]int{}
	if err := collect(doc, deltas); err != nil {
		return nil, err
	}

	if rawGroups, ok := doc[groupsKey]; ok {
		var groups []map[string]json.RawMessage
		if err := json.Unmarshal(rawGroups, &groups); err != nil {
			return nil, fmt.Errorf("%w: groups must be a list of objects", ErrInvalidDocument)
		}
		for _, g := range groups {
			if err := collect(g, deltas); err != nil {
				return nil, err
			}
		}
	}
	return deltas, nil
}

func collect(obj map[string]json.RawMessage, deltas map[string]int) error {
	for key, value := range obj {
		if !strings.HasPrefix(key, resourcePrefix) {
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(key, resourcePrefix)))
		if kind == "" {
			return fmt.Errorf("%w: empty resource kind in %q", ErrInvalidDocument, key)
		}
		n, err := parseCount(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, key, err)
		}
		if n == 0 {
			continue
		}
		deltas[kind] += n
	}
	return nil
}

// parseCount accepts both 2 and "2".
func parseCount(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("count must be an integer")
		}
		if n, err = strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return 0, fmt.Errorf("count must be an integer")
		}
	}
	if n < 0 {
		return 0, fmt.Errorf("count must not be negative")
	}
	return n, nil
}
