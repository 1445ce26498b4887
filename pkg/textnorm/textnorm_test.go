// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "JOSE", "jose"},
		{"strips accents", "José Müller", "jose muller"},
		{"collapses whitespace", "  maria   da  silva ", "maria da silva"},
		{"empty string", "", ""},
		{"already folded", "running drills", "running drills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}
