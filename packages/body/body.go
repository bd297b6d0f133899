package body

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Kind tags the active body representation of a candidate.
type Kind int

const (
	None Kind = iota
	Raw
	JSON
	Form
	Multipart
	GraphQL
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Raw:
		return "raw"
	case JSON:
		return "json"
	case Form:
		return "form"
	case Multipart:
		return "multipart"
	case GraphQL:
		return "graphql"
	default:
		return "unknown"
	}
}

// Field is one form field, kept in insertion order.
type Field struct {
	Key   string
	Value string
}

// GraphQLBody is a GraphQL query plus optional variables.
type GraphQLBody struct {
	Query     string
	Variables map[string]any
}

// Candidate is the tagged union of possible bodies. Only the field
// matching Kind is consulted.
type Candidate struct {
	Kind    Kind
	Raw     []byte
	JSON    any
	Form    []Field
	Parts   []*Part
	GraphQL *GraphQLBody
}

// Encoded is the wire form of a candidate. ContentType is "" when the
// encoding does not imply one (raw and empty bodies).
type Encoded struct {
	Data        []byte
	ContentType string
}

// UnsupportedMethodError reports a GraphQL body on a non-POST request.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return "graphql bodies require POST, got " + e.Method
}

// Encode turns the active candidate into bytes plus content type. The
// method matters only to GraphQL, which is POST-only.
func Encode(method string, c *Candidate) (*Encoded, error) {
	switch c.Kind {
	case None:
		return &Encoded{}, nil

	case Raw:
		return &Encoded{Data: c.Raw}, nil

	case JSON:
		data, err := json.Marshal(c.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode json body: %w", err)
		}
		return &Encoded{Data: data, ContentType: "application/json"}, nil

	case Form:
		return &Encoded{
			Data:        []byte(EncodeForm(c.Form)),
			ContentType: "application/x-www-form-urlencoded",
		}, nil

	case Multipart:
		buf, contentType, err := encodeMultipart(c.Parts)
		if err != nil {
			return nil, err
		}
		return &Encoded{Data: buf.Bytes(), ContentType: contentType}, nil

	case GraphQL:
		if !strings.EqualFold(method, "POST") {
			return nil, &UnsupportedMethodError{Method: method}
		}
		variables := c.GraphQL.Variables
		if variables == nil {
			variables = map[string]any{}
		}
		data, err := json.Marshal(map[string]any{
			"query":     c.GraphQL.Query,
			"variables": variables,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode graphql body: %w", err)
		}
		return &Encoded{Data: data, ContentType: "application/json"}, nil

	default:
		return nil, fmt.Errorf("unknown body kind %d", c.Kind)
	}
}

// EncodeForm serializes fields as key=value pairs joined by &, preserving
// insertion order and repeating duplicate keys.
func EncodeForm(fields []Field) string {
	pairs := make([]string, 0, len(fields))
	for _, f := range fields {
		pairs = append(pairs, url.QueryEscape(f.Key)+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(pairs, "&")
}
