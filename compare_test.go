package orionkmer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempDatabase(t *testing.T, dir, name string, k int, codes []uint64) string {
	t.Helper()
	db := NewDatabase(k)
	set := NewKmerSet(len(codes))
	for _, c := range codes {
		set.Add(c)
	}
	db.AddReference("ref", set)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := SaveDatabase(f, db); err != nil {
		t.Fatalf("SaveDatabase: %v", err)
	}
	return path
}

// S5 in spec.md §8.
func TestRunCompareJaccard(t *testing.T) {
	dir := t.TempDir()
	db1 := writeTempDatabase(t, dir, "db1.orikdb", 4, []uint64{0, 1, 2, 3, 4, 5, 6, 7})
	db2 := writeTempDatabase(t, dir, "db2.orikdb", 4, []uint64{0, 2, 4, 6, 8, 10})

	result, err := RunCompare(db1, db2)
	require.NoError(t, err)
	require.Equal(t, 4, result.IntersectionSize)
	require.Equal(t, 10, result.UnionSize)
	require.InDelta(t, 0.4, result.JaccardIndex, 1e-9)
}

// §8 property 6: compare symmetry.
func TestRunCompareSymmetric(t *testing.T) {
	dir := t.TempDir()
	db1 := writeTempDatabase(t, dir, "db1.orikdb", 4, []uint64{0, 1, 2, 3})
	db2 := writeTempDatabase(t, dir, "db2.orikdb", 4, []uint64{2, 3, 4, 5})

	fwd, err := RunCompare(db1, db2)
	require.NoError(t, err)
	rev, err := RunCompare(db2, db1)
	require.NoError(t, err)

	require.Equal(t, fwd.IntersectionSize, rev.IntersectionSize)
	require.Equal(t, fwd.UnionSize, rev.UnionSize)
	require.Equal(t, fwd.JaccardIndex, rev.JaccardIndex)
}

func TestRunCompareIdenticalDatabasesJaccardOne(t *testing.T) {
	dir := t.TempDir()
	db1 := writeTempDatabase(t, dir, "db1.orikdb", 4, []uint64{1, 2, 3})
	db2 := writeTempDatabase(t, dir, "db2.orikdb", 4, []uint64{1, 2, 3})

	result, err := RunCompare(db1, db2)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.JaccardIndex)
}

func TestRunCompareDisjointJaccardZero(t *testing.T) {
	dir := t.TempDir()
	db1 := writeTempDatabase(t, dir, "db1.orikdb", 4, []uint64{1, 2, 3})
	db2 := writeTempDatabase(t, dir, "db2.orikdb", 4, []uint64{4, 5, 6})

	result, err := RunCompare(db1, db2)
	require.NoError(t, err)
	require.Equal(t, 0.0, result.JaccardIndex)
}

func TestRunCompareIncompatibleK(t *testing.T) {
	dir := t.TempDir()
	db1 := writeTempDatabase(t, dir, "db1.orikdb", 4, []uint64{1})
	db2 := writeTempDatabase(t, dir, "db2.orikdb", 5, []uint64{1})

	_, err := RunCompare(db1, db2)
	require.Error(t, err)
	require.IsType(t, &IncompatibleKError{}, err)
}
