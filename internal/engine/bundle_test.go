package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hu1906/TKB/internal/models"
	appErrors "github.com/Hu1906/TKB/pkg/errors"
)

func typedSection(classID, classType, linkedTheory string, meetings ...models.Meeting) models.Section {
	return models.Section{
		ClassID:        classID,
		SubjectID:      "IT1110",
		ClassType:      classType,
		LinkedTheoryID: linkedTheory,
		Sessions:       meetings,
	}
}

func encodeAll(t *testing.T, sections ...models.Section) []*encodedSection {
	t.Helper()
	encoded := make([]*encodedSection, 0, len(sections))
	for i := range sections {
		sec, err := encodeSection(&sections[i])
		require.NoError(t, err)
		encoded = append(encoded, sec)
	}
	return encoded
}

func bundleClassIDs(b bundle) []string {
	ids := make([]string, 0, len(b.sections))
	for _, sec := range b.sections {
		ids = append(ids, sec.section.ClassID)
	}
	return ids
}

func TestGenerateBundlesPureTheoryCourse(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("T2", "LT", "", meeting(3, 700, 830, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, []string{"T1"}, bundleClassIDs(bundles[0]))
	assert.Equal(t, []string{"T2"}, bundleClassIDs(bundles[1]))
}

func TestGenerateBundlesLinkedExercisePairsOnlyItsTheory(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("T2", "LT", "", meeting(3, 700, 830, 1, 2)),
		typedSection("E1", "BT", "T1", meeting(4, 700, 830, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	// Never a lone theory bundle while an exercise exists.
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"T1", "E1"}, bundleClassIDs(bundles[0]))
}

func TestGenerateBundlesUnlinkedExercisePairsEveryTheory(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("T2", "LT", "", meeting(3, 700, 830, 1, 2)),
		typedSection("E1", "BT", "", meeting(4, 700, 830, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, []string{"T1", "E1"}, bundleClassIDs(bundles[0]))
	assert.Equal(t, []string{"T2", "E1"}, bundleClassIDs(bundles[1]))
}

func TestGenerateBundlesLinkedTheoryMissingMakesExerciseUnusable(t *testing.T) {
	// T9 is not among the allowed sections, so E1 cannot pair with anything.
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("E1", "BT", "T9", meeting(4, 700, 830, 1, 2)),
	)

	_, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoValidBundle.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "IT1110")
}

func TestGenerateBundlesCombinedSectionStandsAlone(t *testing.T) {
	sections := encodeAll(t,
		typedSection("C1", "LT+BT", "", meeting(2, 700, 930, 1, 2)),
		typedSection("T1", "LT", "", meeting(3, 700, 830, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	// The combined section forms its own bundle; with a combined section
	// present, a lone theory is not selectable.
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"C1"}, bundleClassIDs(bundles[0]))
}

func TestGenerateBundlesOtherKindAlwaysIncluded(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("X1", "DA", "", meeting(3, 700, 830, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, []string{"T1"}, bundleClassIDs(bundles[0]))
	assert.Equal(t, []string{"X1"}, bundleClassIDs(bundles[1]))
}

func TestGenerateBundlesDropsInternallyConflictingPair(t *testing.T) {
	// The linked exercise meets at the same time as its theory.
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("E1", "BT", "T1", meeting(2, 800, 930, 1, 2)),
	)

	_, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoValidBundle.Code, appErrors.FromError(err).Code)
}

func TestGenerateBundlesRequiresLabWithoutLabFails(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
	)

	_, err := generateBundles(models.Course{SubjectID: "IT1110", RequiresLab: true}, sections, blackoutTable{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoValidBundle.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "lab")
}

func TestGenerateBundlesRequiredLabCrossJoin(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("T2", "LT", "", meeting(3, 700, 830, 1, 2)),
		typedSection("L1", "TN", "", meeting(4, 700, 930, 1, 2)),
		typedSection("L2", "TN", "", meeting(2, 700, 930, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110", RequiresLab: true}, sections, blackoutTable{})
	require.NoError(t, err)
	// T1+L2 collides on Monday morning, leaving three of four combinations.
	require.Len(t, bundles, 3)
	for _, b := range bundles {
		labs := 0
		for _, sec := range b.sections {
			if models.ParseCompositionKind(sec.section.ClassType) == models.KindLab {
				labs++
			}
		}
		assert.Equal(t, 1, labs, "every bundle carries exactly one lab")
	}
}

func TestGenerateBundlesOptionalLabIgnored(t *testing.T) {
	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("L1", "TN", "", meeting(4, 700, 930, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, blackoutTable{})
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"T1"}, bundleClassIDs(bundles[0]))
}

func TestGenerateBundlesBlackoutFiltersMorning(t *testing.T) {
	var table blackoutTable
	table.morning[2] = true

	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
		typedSection("T2", "LT", "", meeting(2, 1400, 1530, 1, 2)),
	)

	bundles, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, table)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, []string{"T2"}, bundleClassIDs(bundles[0]))
}

func TestGenerateBundlesBlackoutRemovingEverythingFails(t *testing.T) {
	var table blackoutTable
	table.morning[2] = true

	sections := encodeAll(t,
		typedSection("T1", "LT", "", meeting(2, 700, 830, 1, 2)),
	)

	_, err := generateBundles(models.Course{SubjectID: "IT1110"}, sections, table)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoValidBundle.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "blackout")
}

func TestParseBlackouts(t *testing.T) {
	table, err := parseBlackouts(map[string]bool{
		"2-morning":   true,
		"3-afternoon": true,
		"4-morning":   false,
	})
	require.NoError(t, err)
	assert.True(t, table.morning[2])
	assert.True(t, table.afternoon[3])
	assert.False(t, table.morning[4])
}

func TestParseBlackoutsRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"monday-morning", "9-morning", "2-noon", "morning"} {
		_, err := parseBlackouts(map[string]bool{key: true})
		require.Error(t, err, key)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, key)
	}
}

func TestParseBlackoutsRejectsMalformedInactiveKeys(t *testing.T) {
	// A key toggled off is still validated.
	for _, key := range []string{"monday-morning", "9-morning", "2-noon"} {
		_, err := parseBlackouts(map[string]bool{key: false})
		require.Error(t, err, key)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, key)
	}
}
