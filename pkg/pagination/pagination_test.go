// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/users", DefaultPage, DefaultLimit},
		{"explicit values", "/users?page=3&limit=50", 3, 50},
		{"zero page clamps to default", "/users?page=0", DefaultPage, DefaultLimit},
		{"negative page clamps to default", "/users?page=-2", DefaultPage, DefaultLimit},
		{"limit above max clamps to default", "/users?limit=500", DefaultPage, DefaultLimit},
		{"non-numeric values fall back", "/users?page=abc&limit=xyz", DefaultPage, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := FromRequest(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	t.Run("middle page has both neighbors", func(t *testing.T) {
		m := NewMeta(2, 10, 35)
		assert.Equal(t, 4, m.TotalPages)
		assert.True(t, m.HasNext)
		assert.True(t, m.HasPrev)
	})

	t.Run("first page of one", func(t *testing.T) {
		m := NewMeta(1, 10, 5)
		assert.Equal(t, 1, m.TotalPages)
		assert.False(t, m.HasNext)
		assert.False(t, m.HasPrev)
	})

	t.Run("empty result set", func(t *testing.T) {
		m := NewMeta(1, 10, 0)
		assert.Equal(t, 0, m.TotalPages)
		assert.False(t, m.HasNext)
		assert.False(t, m.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		m := NewMeta(4, 10, 35)
		assert.False(t, m.HasNext)
		assert.True(t, m.HasPrev)
	})
}
