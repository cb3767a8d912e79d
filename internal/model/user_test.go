package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUserJSONKeepsExtraFields(t *testing.T) {
	raw := `{"_id":"01HZY0000000000000000000AB","id":1,"nombre":"Juan","email":"juan@mail.com","edad":"treinta","createdAt":"2024-01-02T03:04:05Z","ciudad":"Lima"}`

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if u.ObjectID != "01HZY0000000000000000000AB" || u.ID != 1 || u.Nombre != "Juan" {
		t.Errorf("unexpected known fields: %+v", u)
	}
	if u.Edad != 0 || u.Extra["edad"] != "treinta" {
		t.Errorf("mistyped edad should land in Extra, got edad=%v extra=%v", u.Edad, u.Extra)
	}
	if u.Extra["ciudad"] != "Lima" {
		t.Errorf("unknown field lost: %v", u.Extra)
	}
	if !u.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected createdAt: %v", u.CreatedAt)
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var echoed map[string]any
	if err := json.Unmarshal(out, &echoed); err != nil {
		t.Fatalf("unmarshal echo: %v", err)
	}
	if echoed["edad"] != "treinta" || echoed["ciudad"] != "Lima" || echoed["id"] != float64(1) {
		t.Errorf("unexpected echo: %v", echoed)
	}
}

func TestUserJSONOmitsEmptyObjectID(t *testing.T) {
	out, err := json.Marshal(User{ID: 2, Nombre: "Ana"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["_id"]; ok {
		t.Errorf("expected no _id, got %v", m["_id"])
	}
}
