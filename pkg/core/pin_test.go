package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssignments(t *testing.T) {
	tests := []struct {
		name string
		in   []OrderAssignment
		want []OrderAssignment
	}{
		{
			name: "empty",
			in:   nil,
			want: []OrderAssignment{},
		},
		{
			name: "no duplicates keeps order",
			in:   []OrderAssignment{{ID: 1, OrderIdx: 3}, {ID: 2, OrderIdx: 1}, {ID: 3, OrderIdx: 2}},
			want: []OrderAssignment{{ID: 1, OrderIdx: 3}, {ID: 2, OrderIdx: 1}, {ID: 3, OrderIdx: 2}},
		},
		{
			name: "last assignment wins",
			in:   []OrderAssignment{{ID: 1, OrderIdx: 3}, {ID: 2, OrderIdx: 1}, {ID: 1, OrderIdx: 7}},
			want: []OrderAssignment{{ID: 2, OrderIdx: 1}, {ID: 1, OrderIdx: 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAssignments(tt.in))
		})
	}
}

func TestPinnedItem_Resource(t *testing.T) {
	table := "items"
	p := PinnedItem{ID: 4, ItemType: ItemTypeTable, OriginDatabase: "test", OriginTable: &table}

	r := p.Resource()
	assert.Equal(t, ItemTypeTable, r.Kind)
	assert.Equal(t, "test", r.Database)
	if assert.NotNil(t, r.Table) {
		assert.Equal(t, "items", *r.Table)
	}
}

func TestPinnedItem_Label(t *testing.T) {
	table := "dogs"
	assert.Equal(t, "fixtures", PinnedItem{OriginDatabase: "fixtures"}.Label())
	assert.Equal(t, "fixtures / dogs", PinnedItem{OriginDatabase: "fixtures", OriginTable: &table}.Label())
}

func TestCheckTable(t *testing.T) {
	table := "dogs"
	tests := []struct {
		name    string
		kind    ItemType
		table   *string
		wantErr bool
	}{
		{"database without table", ItemTypeDatabase, nil, false},
		{"database with table", ItemTypeDatabase, &table, true},
		{"table with table", ItemTypeTable, &table, false},
		{"table without table", ItemTypeTable, nil, true},
		{"view without table", ItemTypeView, nil, true},
		{"canned query without table", ItemTypeCannedQuery, nil, true},
		{"custom kind without table", "dashboard", nil, false},
		{"custom kind with table", "dashboard", &table, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTable(tt.kind, tt.table)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
