package allocation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// object is a JSON object that keeps its keys in insertion order.
type object struct {
	keys   []string
	values []any
}

func (o *object) set(key string, v any) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// setString sets key only when v is not empty.
func (o *object) setString(key, v string) {
	if v != "" {
		o.set(key, v)
	}
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, fmt.Errorf("cannot encode %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
