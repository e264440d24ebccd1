package models

import "github.com/mohae/deepcopy"

// CloneMap returns a deep copy of a free-form map. Nil stays nil.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}

	out, ok := deepcopy.Copy(in).(map[string]any)
	if !ok {
		return nil
	}

	return out
}
