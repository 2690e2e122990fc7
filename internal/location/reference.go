// internal/location/reference.go
package location

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Reference is a location reference as a caller supplied it: either a JSON
// number or a string. The distinction matters. Only numeric references can
// be direct ids; a string such as "123456" is always treated as a search term.
type Reference struct {
	id   *int64
	term string
}

func ByID(id int64) Reference {
	return Reference{id: &id}
}

func ByTerm(term string) Reference {
	return Reference{term: term}
}

// ID returns the numeric reference, if this is one.
func (r Reference) ID() (int64, bool) {
	if r.id == nil {
		return 0, false
	}
	return *r.id, true
}

// Term is the reference as search text.
func (r Reference) Term() string {
	if r.id != nil {
		return strconv.FormatInt(*r.id, 10)
	}
	return r.term
}

func (r Reference) IsZero() bool {
	return r.id == nil && r.term == ""
}

func (r Reference) String() string {
	return r.Term()
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Reference{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ByTerm(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("location reference must be a number or a string: %w", err)
	}
	id, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("location reference %s is not an integer", n)
		}
		id = int64(f)
	}
	*r = ByID(id)
	return nil
}

func (r Reference) MarshalJSON() ([]byte, error) {
	if r.id != nil {
		return json.Marshal(*r.id)
	}
	return json.Marshal(r.term)
}
