package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatch(t *testing.T) {
	doc := Document{IDField: "01J0000000000000000000000A", "nombre": "Pollo deshuesado", "userId": float64(1)}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", All, true},
		{"numeric equality across types", Where(Eq("userId", 1)), true},
		{"numeric mismatch", Where(Eq("userId", 2)), false},
		{"string is not a number", Where(Eq("userId", "1")), false},
		{"by id", Where(ByID("01J0000000000000000000000A")), true},
		{"in", Where(In("userId", 3, 1)), true},
		{"in with no values", Where(In[int]("userId")), false},
		{"contains fold", Where(ContainsFold("nombre", "POLLO")), true},
		{"contains fold miss", Where(ContainsFold("nombre", "res")), false},
		{"contains on non-string", Where(ContainsFold("userId", "1")), false},
		{"missing field equals nil", Where(Eq("email", nil)), true},
		{"conjunction", Where(Eq("userId", 1), ContainsFold("nombre", "hues")), true},
		{"conjunction fails", Where(Eq("userId", 1), Eq("nombre", "pollo")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(doc))
		})
	}
}

func TestParseID(t *testing.T) {
	id := NewID()

	got, err := ParseID(id)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "123", "zzz", "507f1f77bcf86cd799439011", id + "0"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrMalformedID, bad)
	}
}
