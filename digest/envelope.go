package digest

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// EnvelopeError is the definite failure when no supported envelope shape
// yields a news_content blob. It names the shapes that were tried so the
// operator can see what the input actually looked like.
type EnvelopeError struct {
	Tried []string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("no news_content found in envelope (tried shapes: %s)", strings.Join(e.Tried, ", "))
}

// envelopeShape is one accepted input layout. unwrap returns the blob and
// true on a match; false means "shape did not match", never a hard error.
type envelopeShape struct {
	name   string
	unwrap func(raw []byte) (string, bool)
}

// Shapes are tried in priority order. The collector usually hands us the
// first two (a Lambda response, bare or wrapped in a one-element list);
// the direct shape covers hand-built fixtures.
var envelopeShapes = []envelopeShape{
	{name: "result-body", unwrap: unwrapResultBody},
	{name: "lambda-list", unwrap: unwrapLambdaList},
	{name: "direct", unwrap: unwrapDirect},
}

// ExtractNewsContent locates the raw text blob inside the decoded JSON
// envelope. Invalid JSON and an exhausted shape list are the only fatal
// failures in the whole pipeline.
func ExtractNewsContent(raw []byte) (string, error) {
	if !jsonAPI.Valid(raw) {
		return "", fmt.Errorf("ExtractNewsContent: envelope is not valid JSON")
	}

	tried := make([]string, 0, len(envelopeShapes))
	for _, shape := range envelopeShapes {
		if content, ok := shape.unwrap(raw); ok {
			return content, nil
		}
		tried = append(tried, shape.name)
	}
	return "", &EnvelopeError{Tried: tried}
}

type resultEnvelope struct {
	Result *struct {
		Body jsoniter.RawMessage `json:"body"`
	} `json:"result"`
}

// Shape 1: {"result": {"body": ...}} where body holds news_content.
func unwrapResultBody(raw []byte) (string, bool) {
	var env resultEnvelope
	if err := jsonAPI.Unmarshal(raw, &env); err != nil || env.Result == nil {
		return "", false
	}
	return newsContentFromBody(env.Result.Body)
}

// Shape 2: a list of Lambda responses; only the first element is consulted.
func unwrapLambdaList(raw []byte) (string, bool) {
	var list []resultEnvelope
	if err := jsonAPI.Unmarshal(raw, &list); err != nil || len(list) == 0 || list[0].Result == nil {
		return "", false
	}
	return newsContentFromBody(list[0].Result.Body)
}

// Shape 3: {"news_content": "..."} with no wrapping at all.
func unwrapDirect(raw []byte) (string, bool) {
	var env struct {
		NewsContent string `json:"news_content"`
	}
	if err := jsonAPI.Unmarshal(raw, &env); err != nil || env.NewsContent == "" {
		return "", false
	}
	return env.NewsContent, true
}

// newsContentFromBody digs news_content out of a Lambda body, which arrives
// either as an object or as a JSON-encoded string holding one. An empty
// news_content counts as no match so later shapes still get a chance.
func newsContentFromBody(body jsoniter.RawMessage) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	data := []byte(body)
	var inner string
	if err := jsonAPI.Unmarshal(data, &inner); err == nil {
		data = []byte(inner)
	}

	var payload struct {
		NewsContent string `json:"news_content"`
	}
	if err := jsonAPI.Unmarshal(data, &payload); err != nil || payload.NewsContent == "" {
		return "", false
	}
	return payload.NewsContent, true
}
