package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
)

func TestSeedUsersAreValid(t *testing.T) {
	names := map[string]bool{}
	roles := map[string]int{}
	for _, su := range seedUsers {
		reg := su.reg
		require.NoError(t, reg.Validate(), "registration %s", su.reg.UserName)

		p := su.profile
		require.NoError(t, p.Validate(), "profile %s", su.reg.UserName)

		assert.False(t, names[reg.UserName], "duplicate user %s", reg.UserName)
		names[reg.UserName] = true
		roles[reg.UserType]++
	}
	assert.Equal(t, 5, roles[data.UserTypeRecruiter])
	assert.Equal(t, 5, roles[data.UserTypeApplicant])
}

func TestRandomPair_Distinct(t *testing.T) {
	for _, n := range []int{2, 3, 10} {
		seen := map[[2]int]bool{}
		for i := 0; i < 500; i++ {
			a, b := randomPair(n)
			require.NotEqual(t, a, b)
			require.True(t, a >= 0 && a < n && b >= 0 && b < n, "pair (%d,%d) out of range for %d", a, b, n)
			seen[[2]int{a, b}] = true
		}
		if n == 2 {
			assert.Len(t, seen, 2, "both orderings should appear")
		}
	}
}
