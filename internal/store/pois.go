package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/johnwards/poiseed/internal/database"
	"github.com/johnwards/poiseed/internal/domain"
)

// POIRecord is a persisted POI.
type POIRecord struct {
	ID uuid.UUID
	domain.POI
	CreatedAt time.Time
	UpdatedAt time.Time
}

// POIStore defines the interface for POI persistence.
type POIStore interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, poi domain.POI) (uuid.UUID, error)
	GetByName(ctx context.Context, name string) (*POIRecord, error)
	Count(ctx context.Context) (int, error)
}

// SQLPOIStore implements POIStore on SQLite or Postgres.
type SQLPOIStore struct {
	q       Querier
	dialect database.Dialect
	types   *pgtype.Map
}

// NewSQLPOIStore creates a store that runs its queries on q.
func NewSQLPOIStore(q Querier, dialect database.Dialect) *SQLPOIStore {
	s := &SQLPOIStore{q: q, dialect: dialect}
	if dialect == database.Postgres {
		s.types = pgtype.NewMap()
	}
	return s
}

// ExistsByName reports whether at least one POI carries name.
func (s *SQLPOIStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx, s.dialect.Rebind(`SELECT 1 FROM pois WHERE name = ? LIMIT 1`), name).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup poi %q: %w", name, err)
	}
	return true, nil
}

// Insert writes poi as a new row and returns its id. Creation and update
// times are stamped by the datastore. Insert does not validate poi.
func (s *SQLPOIStore) Insert(ctx context.Context, poi domain.POI) (uuid.UUID, error) {
	id := uuid.New()

	photos, err := s.photosArg(poi.Photos)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode photos: %w", err)
	}

	_, err = s.q.ExecContext(ctx, s.dialect.Rebind(
		`INSERT INTO pois (
			id, name, description, latitude, longitude, epoch, category,
			importance, year_built, architect, style, photos, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`),
		id.String(),
		poi.Name,
		poi.Description,
		poi.Latitude,
		poi.Longitude,
		string(poi.Epoch),
		string(poi.Category),
		poi.Importance,
		nullInt(poi.YearBuilt),
		nullString(poi.Architect),
		nullString(poi.Style),
		photos,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert poi: %w", err)
	}
	return id, nil
}

// GetByName returns the oldest POI carrying name, or ErrNotFound.
func (s *SQLPOIStore) GetByName(ctx context.Context, name string) (*POIRecord, error) {
	var (
		rec                  POIRecord
		description          sql.NullString
		epoch, category      sql.NullString
		importance           sql.NullInt64
		yearBuilt            sql.NullInt64
		architect, style     sql.NullString
		createdAt, updatedAt timestamp
	)
	photosDest, decodePhotos := s.photosDest(&rec.Photos)

	err := s.q.QueryRowContext(ctx, s.dialect.Rebind(
		`SELECT id, name, description, latitude, longitude, epoch, category,
			importance, year_built, architect, style, photos, created_at, updated_at
		 FROM pois WHERE name = ? ORDER BY created_at, id LIMIT 1`), name,
	).Scan(
		&rec.ID, &rec.Name, &description, &rec.Latitude, &rec.Longitude, &epoch, &category,
		&importance, &yearBuilt, &architect, &style, photosDest, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get poi %q: %w", name, err)
	}
	if err := decodePhotos(); err != nil {
		return nil, fmt.Errorf("decode photos of %q: %w", name, err)
	}

	rec.Description = description.String
	rec.Epoch = domain.Epoch(epoch.String)
	rec.Category = domain.Category(category.String)
	rec.Importance = int(importance.Int64)
	rec.YearBuilt = intPtr(yearBuilt)
	rec.Architect = stringPtr(architect)
	rec.Style = stringPtr(style)
	rec.CreatedAt = createdAt.t
	rec.UpdatedAt = updatedAt.t
	return &rec, nil
}

// Count returns the number of POI rows.
func (s *SQLPOIStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM pois`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pois: %w", err)
	}
	return n, nil
}

// photosArg encodes photos as a text[] value on Postgres and as a JSON array
// on SQLite. An absent list is stored as empty, never NULL.
func (s *SQLPOIStore) photosArg(photos []string) (any, error) {
	if photos == nil {
		photos = []string{}
	}
	if s.dialect == database.Postgres {
		return photos, nil
	}
	b, err := json.Marshal(photos)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// photosDest returns a scan destination for the photos column and a function
// that finishes decoding into dst once the row has been scanned.
func (s *SQLPOIStore) photosDest(dst *[]string) (any, func() error) {
	if s.dialect == database.Postgres {
		return s.types.SQLScanner(dst), func() error {
			if *dst == nil {
				*dst = []string{}
			}
			return nil
		}
	}

	var raw sql.NullString
	return &raw, func() error {
		*dst = []string{}
		if !raw.Valid || raw.String == "" {
			return nil
		}
		return json.Unmarshal([]byte(raw.String), dst)
	}
}
