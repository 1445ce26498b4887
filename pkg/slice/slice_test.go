// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package slice

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Equal(t, []string{}, Map([]int{}, strconv.Itoa))
	assert.Nil(t, Map(nil, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4, 5}, even))
	assert.Nil(t, Filter([]int{1, 3, 5}, even))
	assert.Nil(t, Filter(nil, even))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"read", "write"}, "write"))
	assert.False(t, Contains([]string{"read", "write"}, "delete"))
	assert.False(t, Contains(nil, "read"))
}
