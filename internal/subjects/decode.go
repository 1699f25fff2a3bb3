package subjects

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var reasoningBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

var errNoObject = errors.New("no JSON object in model output")

// firstObject returns the first complete JSON object embedded in model
// output. Models wrap answers in prose, markdown fences or reasoning
// blocks; a streaming decoder started at each opening brace reads exactly
// one value and ignores whatever follows it.
func firstObject(raw string) (json.RawMessage, error) {
	text := reasoningBlock.ReplaceAllString(raw, "")

	for offset := 0; offset < len(text); {
		i := strings.IndexByte(text[offset:], '{')
		if i < 0 {
			break
		}
		start := offset + i

		var obj json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&obj); err == nil {
			return bytes.TrimSpace(obj), nil
		}
		offset = start + 1
	}
	return nil, errNoObject
}
