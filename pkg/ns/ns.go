// Package ns provides a nullable string that maps the empty string to SQL
// NULL and JSON null. It is used for optional Entry columns such as the
// parent reference and the thumbnail locator, where "no value" must survive
// a round trip through both the database driver and the JSON API.
package ns

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type NullString string

func (ns *NullString) Scan(value interface{}) error {
	if value == nil {
		*ns = ""
	} else if v, ok := value.([]byte); ok {
		*ns = NullString(v)
	} else if v, ok := value.(string); ok {
		*ns = NullString(v)
	} else {
		return fmt.Errorf("cannot convert %v of type %T to NullString", value, value)
	}
	return nil
}

func (ns *NullString) Value() (driver.Value, error) {
	if *ns == "" {
		return nil, nil
	}
	return string(*ns), nil
}

// MarshalJSON emits null for the empty string so root-level entries carry
// "parentId": null on the wire rather than an empty string.
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(ns))
}

func (ns *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ns = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ns = NullString(s)
	return nil
}
