package laudo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

func rec(status ltypes.Status) *TestRecord {
	return &TestRecord{Status: status}
}

func TestRollup(t *testing.T) {
	cases := []struct {
		name  string
		tests []*TestRecord
		want  ltypes.Status
	}{
		{
			name:  "any rejected wins",
			tests: []*TestRecord{rec(ltypes.StatusApproved), rec(ltypes.StatusRejected), rec(ltypes.StatusApproved)},
			want:  ltypes.StatusRejected,
		},
		{
			name:  "all approved",
			tests: []*TestRecord{rec(ltypes.StatusApproved), rec(ltypes.StatusApproved)},
			want:  ltypes.StatusApproved,
		},
		{
			name:  "pending does not block approval",
			tests: []*TestRecord{rec(ltypes.StatusPending), rec(ltypes.StatusApproved)},
			want:  ltypes.StatusApproved,
		},
		{
			name:  "all pending is approved",
			tests: []*TestRecord{rec(ltypes.StatusPending)},
			want:  ltypes.StatusApproved,
		},
		{
			name:  "pending plus rejected is rejected",
			tests: []*TestRecord{rec(ltypes.StatusPending), rec(ltypes.StatusRejected)},
			want:  ltypes.StatusRejected,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Rollup(tc.tests))
		})
	}
}

func TestRollupIdempotent(t *testing.T) {
	l := &Laudo{Tests: []*TestRecord{rec(ltypes.StatusApproved), rec(ltypes.StatusRejected)}}

	first := l.Recompute()
	second := l.Recompute()
	assert.Equal(t, first, second, "recomputation with no intervening mutation is stable")
	assert.Equal(t, ltypes.StatusRejected, second)
}

func TestRollupMonotonicOnRejection(t *testing.T) {
	l := &Laudo{Tests: []*TestRecord{rec(ltypes.StatusRejected)}}
	l.Recompute()
	assert.Equal(t, ltypes.StatusRejected, l.Status)

	// Adding approved tests cannot flip a rejected laudo back.
	l.Tests = append(l.Tests, rec(ltypes.StatusApproved), rec(ltypes.StatusApproved))
	l.Recompute()
	assert.Equal(t, ltypes.StatusRejected, l.Status)
}

func TestCounts(t *testing.T) {
	l := &Laudo{Tests: []*TestRecord{
		rec(ltypes.StatusApproved),
		rec(ltypes.StatusRejected),
		rec(ltypes.StatusPending),
	}}

	total, approved, rejected := l.Counts()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, approved)
	assert.Equal(t, 1, rejected)
}

func TestOwned(t *testing.T) {
	assert.False(t, (&TestRecord{}).Owned())

	empty := common.ID("")
	assert.False(t, (&TestRecord{LaudoID: &empty}).Owned(), "empty owner reference is standalone")

	id := common.ID("laudo-1")
	assert.True(t, (&TestRecord{LaudoID: &id}).Owned())
}

func TestSharedContextValidate(t *testing.T) {
	valid := SharedContext{EmployeeID: "e1", ModelID: "m1", MaterialID: "mat1", SectorID: "s1"}
	assert.NoError(t, valid.Validate())

	for _, tc := range []struct {
		name string
		mut  func(*SharedContext)
	}{
		{"missing employee", func(c *SharedContext) { c.EmployeeID = "" }},
		{"missing model", func(c *SharedContext) { c.ModelID = "" }},
		{"missing sector", func(c *SharedContext) { c.SectorID = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mut(&c)
			assert.Error(t, c.Validate())
		})
	}
}
