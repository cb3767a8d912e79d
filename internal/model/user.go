// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"time"
)

// User is a person owning recipes. ID is assigned by the client and is
// distinct from ObjectID, which the store generates.
//
// Updates may store arbitrary fields on a user; those, and known fields
// holding values of an unexpected type, are kept in Extra and echoed back
// verbatim when the user is serialized.
type User struct {
	ObjectID  string
	ID        float64
	Nombre    string
	Email     string
	Edad      float64
	CreatedAt time.Time
	Extra     map[string]any
}

// userFields mirrors the stored document shape of a User.
type userFields struct {
	ObjectID  string    `json:"_id,omitempty"`
	ID        float64   `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Edad      float64   `json:"edad"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON flattens Extra into the user object.
func (u User) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(userFields{
		ObjectID:  u.ObjectID,
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Edad:      u.Edad,
		CreatedAt: u.CreatedAt,
	})
	if err != nil || len(u.Extra) == 0 {
		return base, err
	}

	merged := make(map[string]any, len(u.Extra)+6)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range u.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes known fields and keeps everything else in Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User{}
	known := map[string]any{
		"_id":       &u.ObjectID,
		"id":        &u.ID,
		"nombre":    &u.Nombre,
		"email":     &u.Email,
		"edad":      &u.Edad,
		"createdAt": &u.CreatedAt,
	}

	for key, value := range raw {
		if dst, ok := known[key]; ok {
			if err := json.Unmarshal(value, dst); err == nil {
				continue
			}
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return err
		}
		if u.Extra == nil {
			u.Extra = make(map[string]any)
		}
		u.Extra[key] = v
	}

	return nil
}
