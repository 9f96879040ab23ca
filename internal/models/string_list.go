package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEncoding reports a stored array column whose text is not a
// parseable JSON array of strings. The codec below is the only writer of
// these columns, so hitting this on read means the data was corrupted
// outside this service.
var ErrMalformedEncoding = errors.New("malformed array encoding")

// StringList is an ordered list of strings persisted as a single
// JSON-encoded TEXT column. Encoding is total: nil and empty lists both
// encode to "[]", never to NULL, so decode(encode(x)) == x for every
// list including the empty one.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		return fmt.Errorf("%w: NULL is not a valid encoding", ErrMalformedEncoding)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrMalformedEncoding, value)
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	if decoded == nil {
		decoded = []string{}
	}
	*l = decoded
	return nil
}

// MarshalJSON keeps the wire shape an array even for a nil list.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal([]string(l))
}

// GormDataType tells GORM to map the column as plain text.
func (StringList) GormDataType() string {
	return "text"
}
