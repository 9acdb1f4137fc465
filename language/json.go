package language

import "encoding/json"

// MarshalJSON serialises a Language as its registry code, so persisted
// data stays stable across registry table reorderings.
func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.code)
}

// UnmarshalJSON resolves a Language from its registry code. An unknown or
// empty code round-trips to Unknown rather than failing, since persisted
// pages must tolerate a registry that has shrunk since they were saved.
func (l *Language) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	resolved, ok := FromCode(code)
	if !ok {
		resolved = Unknown
	}
	*l = resolved
	return nil
}
