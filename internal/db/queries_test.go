package db

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testRun(id, module string) *pycode.Run {
	hr := "def f():\n    # doc\n    return 1\n"
	mr := "def f():return 1"
	return &pycode.Run{
		ID:            id,
		ModuleName:    module,
		Fingerprint:   pycode.Fingerprint(hr),
		HRText:        hr,
		MRText:        mr,
		HRChars:       pycode.CountChars(hr),
		MRChars:       pycode.CountChars(mr),
		ReductionPct:  pycode.ReductionPercent(pycode.CountChars(hr), pycode.CountChars(mr)),
		HRPath:        "/tmp/" + module + "_hr.py",
		MRPath:        "/tmp/" + module + "_mr.py",
		MemoryUsageMB: 12.5,
		CreatedAt:     time.Now().Unix(),
	}
}

func TestInsertAndGetRun(t *testing.T) {
	database := testDB(t)

	run := testRun("01RUN0000000000000000000001", "calc")
	if err := InsertRun(database, run); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	got, err := GetRunByID(database, run.ID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}

	if got.ModuleName != "calc" {
		t.Errorf("ModuleName = %q, want calc", got.ModuleName)
	}
	if got.MRText != run.MRText {
		t.Errorf("MRText = %q, want %q", got.MRText, run.MRText)
	}
	if got.MemoryUsageMB != 12.5 {
		t.Errorf("MemoryUsageMB = %v, want 12.5", got.MemoryUsageMB)
	}
	if got.Fingerprint != run.Fingerprint {
		t.Errorf("Fingerprint mismatch")
	}
}

func TestGetRunByIDNotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetRunByID(database, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetRunByID(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestGetLatestRunByFingerprint(t *testing.T) {
	database := testDB(t)

	first := testRun("01RUN0000000000000000000001", "calc")
	first.CreatedAt = time.Now().Unix() - 100
	second := testRun("01RUN0000000000000000000002", "calc")

	if err := InsertRun(database, first); err != nil {
		t.Fatal(err)
	}
	if err := InsertRun(database, second); err != nil {
		t.Fatal(err)
	}

	got, err := GetLatestRunByFingerprint(database, first.Fingerprint)
	if err != nil {
		t.Fatalf("GetLatestRunByFingerprint() error = %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("latest run = %s, want %s", got.ID, second.ID)
	}
}

func TestListRuns(t *testing.T) {
	database := testDB(t)

	base := time.Now().Unix()
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("01RUN00000000000000000000%02d", i), fmt.Sprintf("mod%d", i))
		run.CreatedAt = base + int64(i)
		if err := InsertRun(database, run); err != nil {
			t.Fatal(err)
		}
	}

	summaries, total, err := ListRuns(database, 3, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(summaries) != 3 {
		t.Fatalf("len(summaries) = %d, want 3", len(summaries))
	}
	// Newest first
	if summaries[0].ModuleName != "mod4" {
		t.Errorf("first summary = %s, want mod4", summaries[0].ModuleName)
	}

	// Offset past the end
	summaries, _, err = ListRuns(database, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Errorf("len(summaries) = %d past end, want 0", len(summaries))
	}
}

func TestDeleteRun(t *testing.T) {
	database := testDB(t)

	run := testRun("01RUN0000000000000000000001", "calc")
	if err := InsertRun(database, run); err != nil {
		t.Fatal(err)
	}

	if err := DeleteRun(database, run.ID); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}

	if _, err := GetRunByID(database, run.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("run still fetchable after delete: %v", err)
	}

	if err := DeleteRun(database, run.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("double delete error = %v, want NOT_FOUND", err)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	database := testDB(t)

	now := time.Now().Unix()
	old := testRun("01RUN0000000000000000000001", "old")
	old.CreatedAt = now - 86400*30
	fresh := testRun("01RUN0000000000000000000002", "fresh")
	fresh.CreatedAt = now

	if err := InsertRun(database, old); err != nil {
		t.Fatal(err)
	}
	if err := InsertRun(database, fresh); err != nil {
		t.Fatal(err)
	}

	purged, err := PurgeOlderThan(database, now-86400*7)
	if err != nil {
		t.Fatalf("PurgeOlderThan() error = %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if _, err := GetRunByID(database, fresh.ID); err != nil {
		t.Errorf("fresh run was purged: %v", err)
	}
}
