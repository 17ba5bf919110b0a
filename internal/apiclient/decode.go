package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/spec-kit/ticket-console/internal/api/dto"
)

// DecodeData decodes body into out. When the body is a {"data": ...}
// envelope the data member is decoded; otherwise the whole body is.
// A nil out or an empty body is not an error.
func DecodeData(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var envelope dto.Envelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		data := bytes.TrimSpace(envelope.Data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			return json.Unmarshal(data, out)
		}
	}
	return json.Unmarshal(body, out)
}
