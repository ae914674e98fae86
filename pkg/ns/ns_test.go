package ns

import (
	"database/sql/driver"
	"encoding/json"
	"testing"
)

func TestNullString(t *testing.T) {
	// Test cases for the Scan method
	tests := []struct {
		name    string
		input   interface{}
		want    NullString
		wantErr bool
	}{
		{
			name:  "null input",
			input: nil,
			want:  "",
		},
		{
			name:  "byte slice input",
			input: []byte("parent-id"),
			want:  "parent-id",
		},
		{
			name:  "string input",
			input: "parent-id",
			want:  "parent-id",
		},
		{
			name:    "unsupported type input",
			input:   123,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ns NullString
			err := ns.Scan(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Scan() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if ns != tt.want {
				t.Errorf("Scan() = %v, want %v", ns, tt.want)
			}
		})
	}

	// Test cases for the Value method
	valueTests := []struct {
		name string
		ns   NullString
		want driver.Value
	}{
		{
			name: "null string",
			ns:   "",
			want: nil,
		},
		{
			name: "non-null string",
			ns:   "parent-id",
			want: "parent-id",
		},
	}

	for _, tt := range valueTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ns.Value()
			if err != nil {
				t.Errorf("Value() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNullStringJSON(t *testing.T) {
	type payload struct {
		ParentID NullString `json:"parentId"`
	}

	tests := []struct {
		name string
		in   payload
		want string
	}{
		{
			name: "empty marshals to null",
			in:   payload{ParentID: ""},
			want: `{"parentId":null}`,
		},
		{
			name: "non-empty marshals to string",
			in:   payload{ParentID: "abc"},
			want: `{"parentId":"abc"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Errorf("Marshal() error = %v", err)
				return
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
			var out payload
			if err = json.Unmarshal(data, &out); err != nil {
				t.Errorf("Unmarshal() error = %v", err)
				return
			}
			if out.ParentID != tt.in.ParentID {
				t.Errorf("Unmarshal() = %v, want %v", out.ParentID, tt.in.ParentID)
			}
		})
	}
}
