package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Numeric holds a set weight or rep count exactly as the client sent it.
// Clients send either JSON numbers or numeric strings; both are kept as text
// and only interpreted when volume is computed.
type Numeric string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric field must be a string or number: %w", err)
	}
	// store the value, not the literal, so 1e1 reads back as "10"
	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("numeric field out of range: %w", err)
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	*n = Numeric(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// UnmarshalBSONValue lets documents written with numeric weight/reps decode into Numeric
func (n *Numeric) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.String:
		*n = Numeric(v.StringValue())
	case bsontype.Double:
		*n = Numeric(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case bsontype.Int32:
		*n = Numeric(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Int64:
		*n = Numeric(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Null, bsontype.Undefined:
		*n = ""
	default:
		return fmt.Errorf("cannot decode %s into Numeric", t)
	}
	return nil
}

func (n Numeric) String() string {
	return string(n)
}
