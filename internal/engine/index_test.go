package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hu1906/TKB/internal/models"
)

func TestBuildConflictIndexSymmetric(t *testing.T) {
	a := mustEncode(t, section("A1", "A", meeting(2, 700, 830, 1, 2)))
	b := mustEncode(t, section("B1", "B", meeting(2, 800, 930, 2, 3)))
	c := mustEncode(t, section("C1", "C", meeting(5, 700, 830, 1, 2)))

	index := buildConflictIndex([]courseCandidates{
		{course: models.Course{SubjectID: "A"}, bundles: []bundle{{sections: []*encodedSection{a}}}},
		{course: models.Course{SubjectID: "B"}, bundles: []bundle{{sections: []*encodedSection{b}}}},
		{course: models.Course{SubjectID: "C"}, bundles: []bundle{{sections: []*encodedSection{c}}}},
	})

	assert.True(t, index["A1"]["B1"])
	assert.True(t, index["B1"]["A1"])
	assert.False(t, index["A1"]["C1"])
	assert.False(t, index["C1"]["B1"])
}

func TestBuildConflictIndexSkipsSameCourse(t *testing.T) {
	// Two sections of one course overlap, but a schedule can never hold
	// both, so the index must not record them.
	a1 := mustEncode(t, section("A1", "A", meeting(2, 700, 830, 1)))
	a2 := mustEncode(t, section("A2", "A", meeting(2, 700, 830, 1)))

	index := buildConflictIndex([]courseCandidates{
		{course: models.Course{SubjectID: "A"}, bundles: []bundle{
			{sections: []*encodedSection{a1}},
			{sections: []*encodedSection{a2}},
		}},
	})

	require.Contains(t, index, "A1")
	assert.False(t, index["A1"]["A2"])
	assert.False(t, index["A2"]["A1"])
}

func TestBuildConflictIndexDeduplicatesSharedSections(t *testing.T) {
	// The same theory section appears in two bundles; the index holds one
	// entry for it.
	th := mustEncode(t, section("T1", "A", meeting(2, 700, 830, 1)))
	e1 := mustEncode(t, section("E1", "A", meeting(3, 700, 830, 1)))
	e2 := mustEncode(t, section("E2", "A", meeting(4, 700, 830, 1)))

	index := buildConflictIndex([]courseCandidates{
		{course: models.Course{SubjectID: "A"}, bundles: []bundle{
			{sections: []*encodedSection{th, e1}},
			{sections: []*encodedSection{th, e2}},
		}},
	})

	assert.Len(t, index, 3)
}
