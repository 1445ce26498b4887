// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package athlete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestSearchPattern verifies the query term is folded before it becomes a LIKE
pattern, so accented and mixed-case input produce the same pattern.
*/
func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%jose%", searchPattern("José"))
	assert.Equal(t, "%jose%", searchPattern("JOSE"))
	assert.Equal(t, "%maria silva%", searchPattern("  María   Silva "))
}

/*
TestSearchClause verifies every searchable column is unaccented in the
predicate, matching the folding applied to the pattern. A raw column next to
a folded pattern would silently exclude accented rows.
*/
func TestSearchClause(t *testing.T) {
	clause := searchClause("$1")

	for _, column := range []string{"full_name", "email", "primary_sport"} {
		assert.Contains(t, clause, "unaccent("+column+") ILIKE $1")
	}
	assert.Equal(t, 3, strings.Count(clause, "unaccent("))
}
