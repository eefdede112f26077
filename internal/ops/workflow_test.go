package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
)

// TestFullWorkflow exercises the complete run lifecycle:
// dual → fetch by id → fetch by fingerprint → list → delete → purge → fetch (not found)
func TestFullWorkflow(t *testing.T) {
	env, _ := testEnv(t)
	ctx := context.Background()

	source := "def add(a, b):\n    # sums its arguments\n    return a + b\n"

	// 1. Create dual versions
	dualOut, err := DualVersions(ctx, env, DualVersionsInput{
		Source:     source,
		ModuleName: "adder",
	})
	require.NoError(t, err)
	require.NotEmpty(t, dualOut.RunID)
	id := dualOut.RunID

	// 2. Fetch by ID
	fetchOut, err := Fetch(env, FetchInput{ID: id})
	require.NoError(t, err)
	require.Equal(t, "adder", fetchOut.ModuleName)
	require.Equal(t, source, fetchOut.HRText)
	require.NotContains(t, fetchOut.MRText, "#")

	// 3. Fetch by fingerprint resolves to the same run
	fetchOut, err = Fetch(env, FetchInput{Fingerprint: dualOut.Fingerprint})
	require.NoError(t, err)
	require.Equal(t, id, fetchOut.ID)

	// Text can be excluded
	noText := false
	fetchOut, err = Fetch(env, FetchInput{ID: id, IncludeText: &noText})
	require.NoError(t, err)
	require.Empty(t, fetchOut.HRText)
	require.Empty(t, fetchOut.MRText)
	require.NotZero(t, fetchOut.HRChars)

	// 4. List shows the run
	listOut, err := List(env, ListInput{})
	require.NoError(t, err)
	require.Len(t, listOut.Items, 1)
	require.Equal(t, id, listOut.Items[0].ID)

	// 5. A second dual for the same source is a cache hit in the
	// pipeline but still records a fresh run
	dualOut2, err := DualVersions(ctx, env, DualVersionsInput{
		Source:     source,
		ModuleName: "adder2",
	})
	require.NoError(t, err)
	require.NotEqual(t, id, dualOut2.RunID)
	require.Equal(t, dualOut.Fingerprint, dualOut2.Fingerprint)
	require.Equal(t, 1, env.Opt.Computes())

	// 6. Delete the first run
	deleteOut, err := Delete(env, DeleteInput{ID: id, RemoveArtifacts: true})
	require.NoError(t, err)
	require.True(t, deleteOut.Deleted)

	_, err = Fetch(env, FetchInput{ID: id})
	var oErr *errors.OptError
	require.ErrorAs(t, err, &oErr)
	require.Equal(t, errors.ErrNotFound, oErr.Code)

	// 7. Purge removes the rest
	purgeOut, err := Purge(env, PurgeInput{})
	require.NoError(t, err)
	require.Equal(t, 1, purgeOut.Purged)

	listOut, err = List(env, ListInput{})
	require.NoError(t, err)
	require.Empty(t, listOut.Items)
}

func TestFetchRequiresExactlyOneRef(t *testing.T) {
	env, _ := testEnv(t)

	_, err := Fetch(env, FetchInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = Fetch(env, FetchInput{ID: "x", Fingerprint: "y"})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
