package logdnasdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    []LogRecord
		wantErr bool
	}{
		{
			name:  "single record",
			frame: `{"p":{"_ts":1700000000000,"_host":"web1","_app":"api","_line":"boot ok"}}`,
			want:  []LogRecord{{Timestamp: 1700000000000, Host: "web1", App: "api", Line: "boot ok"}},
		},
		{
			name:  "array keeps order",
			frame: `{"p":[{"_ts":1,"_host":"a","_app":"x","_line":"one"},{"_ts":2,"_host":"b","_app":"y","level":"warn","_line":"two"}]}`,
			want: []LogRecord{
				{Timestamp: 1, Host: "a", App: "x", Line: "one"},
				{Timestamp: 2, Host: "b", App: "y", Level: "warn", Line: "two"},
			},
		},
		{
			name:  "leading whitespace",
			frame: " \n\t{\"p\":{\"_ts\":3,\"_host\":\"h\",\"_app\":\"a\",\"_line\":\"l\"}}",
			want:  []LogRecord{{Timestamp: 3, Host: "h", App: "a", Line: "l"}},
		},
		{
			name:  "missing payload",
			frame: `{"e":"meta"}`,
			want:  nil,
		},
		{name: "empty array", frame: `{"p":[]}`, want: []LogRecord{}},
		{name: "not an object", frame: "hello", wantErr: true},
		{name: "array frame", frame: `[{"p":{}}]`, wantErr: true},
		{name: "empty", frame: "", wantErr: true},
		{name: "broken json", frame: `{"p":`, wantErr: true},
		{name: "scalar payload", frame: `{"p":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame([]byte(tt.frame))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedMessage)
				return
			}
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogRecord_Time(t *testing.T) {
	r := LogRecord{Timestamp: 1700000000123}
	assert.Equal(t, int64(1700000000123), r.Time().UnixMilli())
}
