package lreader

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLimitReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr error
	}{
		{
			name:  "input below limit",
			input: "hello",
			limit: 10,
			want:  "hello",
		},
		{
			name:  "input exactly at limit",
			input: "hello",
			limit: 5,
			want:  "hello",
		},
		{
			name:    "input above limit",
			input:   "hello world",
			limit:   5,
			wantErr: ErrLimit,
		},
		{
			name:  "empty input",
			input: "",
			limit: 5,
			want:  "",
		},
		{
			name:    "zero limit with input",
			input:   "x",
			limit:   0,
			wantErr: ErrLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := io.Copy(&buf, New(strings.NewReader(tt.input), tt.limit))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Copy() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Copy() error = %v", err)
				return
			}
			if buf.String() != tt.want {
				t.Errorf("Copy() read %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLimitReaderAfterLimit(t *testing.T) {
	r := New(strings.NewReader("abcdef"), 3)
	buf := make([]byte, 16)
	if _, err := r.Read(buf); !errors.Is(err, ErrLimit) {
		t.Errorf("Read() error = %v, want %v", err, ErrLimit)
	}
	// Subsequent reads keep failing
	if _, err := r.Read(buf); !errors.Is(err, ErrLimit) {
		t.Errorf("Read() error = %v, want %v", err, ErrLimit)
	}
}
