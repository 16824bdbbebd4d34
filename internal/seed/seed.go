package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/poiseed/internal/database"
	"github.com/johnwards/poiseed/internal/domain"
	"github.com/johnwards/poiseed/internal/store"
)

// Status is what happened to a single record.
type Status int

const (
	StatusInserted Status = iota + 1
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the per-record result of an import.
type Outcome struct {
	Name   string
	Status Status
	ID     uuid.UUID // set when inserted
	Err    error     // set when failed
}

// RecordError ties a per-record failure to the record's name.
type RecordError struct {
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("poi %q: %v", e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Result aggregates the outcomes of one import run.
type Result struct {
	Inserted int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

// Total is inserted plus skipped. Failed records are not counted, so Total
// falls short of the catalog size by exactly Failed.
func (r Result) Total() int { return r.Inserted + r.Skipped }

// Err joins every per-record failure as a *RecordError, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			errs = append(errs, &RecordError{Name: o.Name, Err: o.Err})
		}
	}
	return errors.Join(errs...)
}

func (r *Result) add(o Outcome) {
	switch o.Status {
	case StatusInserted:
		r.Inserted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Reporter is told about each record as soon as it has been processed.
type Reporter interface {
	Outcome(o Outcome)
}

const savepoint = "poi_record"

// Import writes every record whose name is not yet stored, in order, inside
// a single transaction that is committed once at the end.
//
// Each record runs under its own savepoint. A record that fails validation,
// lookup or insert is rolled back to that savepoint, reported, and counted as
// failed; the batch carries on. Records are de-duplicated by name only, so two
// distinct places sharing a name cannot both be seeded.
//
// The returned error is non-nil only when the transaction itself cannot be
// started or committed, or ctx is cancelled; no rows are written then.
func Import(ctx context.Context, db *sql.DB, dialect database.Dialect, records []domain.POI, rep Reporter) (Result, error) {
	start := time.Now()
	result := Result{Outcomes: make([]Outcome, 0, len(records))}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin import: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	pois := store.NewSQLPOIStore(tx, dialect)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import interrupted: %w", err)
		}

		o := importRecord(ctx, tx, pois, rec)
		result.add(o)

		if o.Status == StatusFailed {
			slog.Warn("poi import failed",
				"name", o.Name,
				"constraint", store.IsConstraintViolation(o.Err),
				"error", o.Err,
			)
		} else {
			slog.Debug("poi processed", "name", o.Name, "status", o.Status.String())
		}
		if rep != nil {
			rep.Outcome(o)
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit import: %w", err)
	}
	committed = true

	slog.Info("poi import finished",
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", time.Since(start),
	)
	return result, nil
}

func importRecord(ctx context.Context, tx *sql.Tx, pois store.POIStore, rec domain.POI) Outcome {
	o := Outcome{Name: rec.Name}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		o.Status, o.Err = StatusFailed, fmt.Errorf("savepoint: %w", err)
		return o
	}

	status, id, err := writeIfAbsent(ctx, pois, rec)
	if err != nil {
		o.Status, o.Err = StatusFailed, err
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			o.Err = errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rbErr))
		}
	} else {
		o.Status, o.ID = status, id
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil && o.Err == nil {
		o.Status, o.ID, o.Err = StatusFailed, uuid.Nil, fmt.Errorf("release savepoint: %w", err)
	}
	return o
}

func writeIfAbsent(ctx context.Context, pois store.POIStore, rec domain.POI) (Status, uuid.UUID, error) {
	exists, err := pois.ExistsByName(ctx, rec.Name)
	if err != nil {
		return StatusFailed, uuid.Nil, err
	}
	if exists {
		return StatusSkipped, uuid.Nil, nil
	}

	if err := rec.Validate(); err != nil {
		return StatusFailed, uuid.Nil, err
	}

	id, err := pois.Insert(ctx, rec)
	if err != nil {
		return StatusFailed, uuid.Nil, err
	}
	return StatusInserted, id, nil
}
