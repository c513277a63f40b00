package dbaccess

import "encoding/json"

// Row is a single result row, mapping column names to values.
type Row map[string]any

// ToJSON converts the row to a JSON string.
func (r Row) ToJSON() (string, error) {
	if r == nil {
		return "{}", nil
	}
	bytes, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
