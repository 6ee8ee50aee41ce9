package logdnasdk

import (
	"bytes"
	"fmt"
	"time"
)

// LogRecord is one log line as delivered by tail frames and search results.
type LogRecord struct {
	Timestamp int64  `json:"_ts"` // epoch millis
	Host      string `json:"_host"`
	App       string `json:"_app"`
	Level     string `json:"level,omitempty"`
	Line      string `json:"_line"`
}

func (r LogRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// tailFrame is the envelope of a streamed frame. p holds either a single
// record object or an array of them.
type tailFrame struct {
	P rawPayload `json:"p"`
}

type rawPayload []byte

func (r *rawPayload) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// DecodeFrame parses one streamed frame into its records, in payload order.
// Anything that is not a JSON object yields ErrMalformedMessage.
func DecodeFrame(frame []byte) ([]LogRecord, error) {
	trimmed := bytes.TrimLeft(frame, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMalformedMessage
	}

	var f tailFrame
	if err := jsonUnmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return decodeRecords(f.P)
}

func decodeRecords(payload []byte) ([]LogRecord, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}

	switch payload[0] {
	case '[':
		var records []LogRecord
		if err := jsonUnmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return records, nil

	case '{':
		var record LogRecord
		if err := jsonUnmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return []LogRecord{record}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected payload %q", ErrMalformedMessage, payload[0])
	}
}
