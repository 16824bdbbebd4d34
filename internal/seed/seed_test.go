package seed_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/johnwards/poiseed/internal/catalog"
	"github.com/johnwards/poiseed/internal/database"
	"github.com/johnwards/poiseed/internal/domain"
	"github.com/johnwards/poiseed/internal/seed"
	"github.com/johnwards/poiseed/internal/store"
	"github.com/johnwards/poiseed/internal/testhelpers"
)

// recorder collects outcomes in the order they are reported.
type recorder struct {
	outcomes []seed.Outcome
}

func (r *recorder) Outcome(o seed.Outcome) { r.outcomes = append(r.outcomes, o) }

func countPOIs(t *testing.T, db *sql.DB) int {
	t.Helper()
	n, err := store.NewSQLPOIStore(db, database.SQLite).Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func runImport(t *testing.T, db *sql.DB, records []domain.POI) (seed.Result, *recorder) {
	t.Helper()
	rec := &recorder{}
	res, err := seed.Import(context.Background(), db, database.SQLite, records, rec)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return res, rec
}

func TestImportEmptyStore(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()

	res, rec := runImport(t, db, records)

	if res.Inserted != len(records) {
		t.Errorf("Inserted = %d, want %d", res.Inserted, len(records))
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
	if res.Failed != 0 {
		t.Errorf("Failed = %d, want 0 (err: %v)", res.Failed, res.Err())
	}
	if res.Total() != len(records) {
		t.Errorf("Total = %d, want %d", res.Total(), len(records))
	}
	if got := countPOIs(t, db); got != len(records) {
		t.Errorf("rows = %d, want %d", got, len(records))
	}

	if len(rec.outcomes) != len(records) {
		t.Fatalf("reported %d outcomes, want %d", len(rec.outcomes), len(records))
	}
	for i, o := range rec.outcomes {
		if o.Name != records[i].Name {
			t.Errorf("outcome %d = %q, want %q (order must follow catalog)", i, o.Name, records[i].Name)
		}
		if o.Status != seed.StatusInserted {
			t.Errorf("outcome %d status = %s, want inserted", i, o.Status)
		}
	}
}

func TestImportIdempotent(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()

	first, _ := runImport(t, db, records)
	if first.Inserted != 12 || first.Skipped != 0 {
		t.Fatalf("first run = %+v, want 12 inserted", first)
	}

	second, rec := runImport(t, db, records)
	if second.Inserted != 0 {
		t.Errorf("second Inserted = %d, want 0", second.Inserted)
	}
	if second.Skipped != 12 {
		t.Errorf("second Skipped = %d, want 12", second.Skipped)
	}
	for _, o := range rec.outcomes {
		if o.Status != seed.StatusSkipped {
			t.Errorf("%s: status = %s, want skipped", o.Name, o.Status)
		}
	}
	if got := countPOIs(t, db); got != 12 {
		t.Errorf("rows = %d, want 12 (no duplicates)", got)
	}
}

func TestImportPartiallySeededStore(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()

	runImport(t, db, records[:5])
	res, _ := runImport(t, db, records)

	if res.Inserted != 7 || res.Skipped != 5 {
		t.Errorf("got inserted=%d skipped=%d, want 7 and 5", res.Inserted, res.Skipped)
	}
}

func TestImportExistingNameSkippedBeforeValidation(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()
	runImport(t, db, records[:1])

	stale := records[0].Clone()
	stale.Importance = 42
	res, rec := runImport(t, db, []domain.POI{stale})

	if res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("got %+v, want the stored name skipped", res)
	}
	if rec.outcomes[0].Status != seed.StatusSkipped {
		t.Errorf("status = %s, want skipped", rec.outcomes[0].Status)
	}
}

func TestImportMissingOptionalField(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()
	records[3].YearBuilt = nil

	res, _ := runImport(t, db, records)
	if res.Inserted != 12 {
		t.Fatalf("Inserted = %d, want 12", res.Inserted)
	}

	got, err := store.NewSQLPOIStore(db, database.SQLite).GetByName(context.Background(), records[3].Name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.YearBuilt != nil {
		t.Errorf("YearBuilt = %d, want NULL", *got.YearBuilt)
	}
}

func TestImportInvalidRecordDoesNotAbortBatch(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()
	records[2].Importance = 42
	records[7].Importance = -1

	res, rec := runImport(t, db, records)

	if res.Failed != 2 {
		t.Errorf("Failed = %d, want 2", res.Failed)
	}
	if res.Inserted != 10 {
		t.Errorf("Inserted = %d, want 10", res.Inserted)
	}
	if res.Total() != len(records)-2 {
		t.Errorf("Total = %d, want %d", res.Total(), len(records)-2)
	}
	if len(rec.outcomes) != len(records) {
		t.Errorf("reported %d outcomes, want every record attempted", len(rec.outcomes))
	}

	var verr *domain.ValidationError
	if !errors.As(rec.outcomes[2].Err, &verr) || verr.Field != "importance" {
		t.Errorf("outcome 2 err = %v, want importance ValidationError", rec.outcomes[2].Err)
	}

	var recErr *seed.RecordError
	if !errors.As(res.Err(), &recErr) {
		t.Fatalf("Result.Err = %v, want *RecordError", res.Err())
	}
	if recErr.Name != records[2].Name {
		t.Errorf("RecordError.Name = %q, want %q", recErr.Name, records[2].Name)
	}
	if got := countPOIs(t, db); got != 10 {
		t.Errorf("rows = %d, want 10", got)
	}
}

func TestImportDatastoreErrorIsIsolated(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()
	bad := records[6].Name

	// Fail one insert inside the database, after validation has passed.
	_, err := db.Exec(`CREATE TRIGGER reject_one BEFORE INSERT ON pois
		WHEN NEW.name = '` + bad + `'
		BEGIN SELECT RAISE(ABORT, 'rejected by trigger'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	res, rec := runImport(t, db, records)

	if res.Failed != 1 || res.Inserted != 11 {
		t.Fatalf("got %+v, want 11 inserted and 1 failed", res)
	}
	if rec.outcomes[6].Status != seed.StatusFailed || rec.outcomes[6].Err == nil {
		t.Errorf("outcome 6 = %+v, want failed with error", rec.outcomes[6])
	}
	for i, o := range rec.outcomes[7:] {
		if o.Status != seed.StatusInserted {
			t.Errorf("record after failure %d = %s, want inserted", i+7, o.Status)
		}
	}

	exists, err := store.NewSQLPOIStore(db, database.SQLite).ExistsByName(context.Background(), bad)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("rejected record must not be persisted")
	}
}

func TestImportDuplicateNamesInBatch(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	records := catalog.Moscow()
	records = append(records, records[0])

	res, _ := runImport(t, db, records)

	if res.Inserted != 12 || res.Skipped != 1 {
		t.Errorf("got inserted=%d skipped=%d, want 12 and 1", res.Inserted, res.Skipped)
	}
}

func TestImportEmptyCatalog(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	res, _ := runImport(t, db, nil)
	if res.Total() != 0 || res.Failed != 0 {
		t.Errorf("got %+v, want zero counts", res)
	}
	if res.Err() != nil {
		t.Errorf("Err = %v, want nil", res.Err())
	}
}

func TestImportCancelledContext(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seed.Import(ctx, db, database.SQLite, catalog.Moscow(), nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if got := countPOIs(t, db); got != 0 {
		t.Errorf("rows = %d, want 0 after aborted import", got)
	}
}

func TestImportMissingSchema(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	res, err := seed.Import(context.Background(), db, database.SQLite, catalog.Moscow(), nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Failed != 12 {
		t.Errorf("Failed = %d, want 12 when the pois table is missing", res.Failed)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[seed.Status]string{
		seed.StatusInserted: "inserted",
		seed.StatusSkipped:  "skipped",
		seed.StatusFailed:   "failed",
		seed.Status(99):     "Status(99)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
