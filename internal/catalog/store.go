package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Mechanism is one compiled input recorded in the catalog.
type Mechanism struct {
	ID         int64     `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Source     string    `json:"source" yaml:"source"`
	Elements   int       `json:"elements" yaml:"elements"`
	Species    int       `json:"species" yaml:"species"`
	Phases     int       `json:"phases" yaml:"phases"`
	Reactions  int       `json:"reactions" yaml:"reactions"`
	CompiledAt time.Time `json:"compiled_at" yaml:"compiled_at"`
}

// Species is a species row of a mechanism.
type Species struct {
	Mechanism   string   `json:"mechanism" yaml:"mechanism"`
	Name        string   `json:"name" yaml:"name"`
	Composition string   `json:"composition" yaml:"composition"`
	Phase       string   `json:"phase,omitempty" yaml:"phase,omitempty"` // empty when no phase lists the species
	Charge      *float64 `json:"charge,omitempty" yaml:"charge,omitempty"`
}

// Reaction is a reaction row of a mechanism with its derived rate units.
type Reaction struct {
	Mechanism      string  `json:"mechanism" yaml:"mechanism"`
	ID             string  `json:"id" yaml:"id"`
	Equation       string  `json:"equation" yaml:"equation"`
	Kind           string  `json:"kind" yaml:"kind"`
	UnitFactor     float64 `json:"unit_factor" yaml:"unit_factor"`
	RateUnits      string  `json:"rate_units,omitempty" yaml:"rate_units,omitempty"`
	GoverningPhase string  `json:"governing_phase,omitempty" yaml:"governing_phase,omitempty"`
}

// Entry is everything recorded for one mechanism.
type Entry struct {
	Mechanism Mechanism
	Species   []Species
	Reactions []Reaction
}

// Store is a SQLite-backed catalog.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the catalog at path, creating it and running migrations as
// needed. Use ":memory:" for an in-memory catalog.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create catalog directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// one connection keeps an in-memory database alive across queries
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping catalog: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug("opened catalog", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records e, replacing any mechanism with the same name.
func (s *Store) Save(ctx context.Context, e *Entry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m := &e.Mechanism
	if m.CompiledAt.IsZero() {
		m.CompiledAt = time.Now().UTC()
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM mechanisms WHERE name = ?`, m.Name); err != nil {
		return fmt.Errorf("failed to replace mechanism %s: %w", m.Name, err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO mechanisms (name, source, elements, species, phases, reactions, compiled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Source, m.Elements, m.Species, m.Phases, m.Reactions, m.CompiledAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mechanism %s: %w", m.Name, err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	for i, sp := range e.Species {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO species (mechanism_id, position, name, composition, phase, charge) VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, i, sp.Name, sp.Composition, nullString(sp.Phase), nullFloat(sp.Charge),
		); err != nil {
			return fmt.Errorf("failed to insert species %s: %w", sp.Name, err)
		}
	}
	for i, r := range e.Reactions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO reactions (mechanism_id, position, reaction_id, equation, kind, unit_factor, rate_units, governing_phase)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, i, r.ID, r.Equation, r.Kind, r.UnitFactor, r.RateUnits, nullString(r.GoverningPhase),
		); err != nil {
			return fmt.Errorf("failed to insert reaction %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mechanism %s: %w", m.Name, err)
	}
	s.logger.Debug("saved mechanism", "name", m.Name, "species", len(e.Species), "reactions", len(e.Reactions))
	return nil
}

// Mechanisms lists recorded mechanisms by name.
func (s *Store) Mechanisms(ctx context.Context) ([]Mechanism, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source, elements, species, phases, reactions, compiled_at FROM mechanisms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mechanisms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Mechanism
	for rows.Next() {
		var m Mechanism
		var compiledAt string
		if err := rows.Scan(&m.ID, &m.Name, &m.Source, &m.Elements, &m.Species, &m.Phases, &m.Reactions, &compiledAt); err != nil {
			return nil, fmt.Errorf("failed to scan mechanism: %w", err)
		}
		if m.CompiledAt, err = time.Parse(time.RFC3339, compiledAt); err != nil {
			return nil, fmt.Errorf("mechanism %s: bad compiled_at %q: %w", m.Name, compiledAt, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Species lists species across mechanisms, or of one mechanism when name is
// non-empty, in mechanism then declaration order.
func (s *Store) Species(ctx context.Context, mechanism string) ([]Species, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.name, s.name, s.composition, s.phase, s.charge
		 FROM species s JOIN mechanisms m ON m.id = s.mechanism_id
		 WHERE ? = '' OR m.name = ?
		 ORDER BY m.name, s.position`, mechanism, mechanism)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Species
	for rows.Next() {
		var sp Species
		var phase sql.NullString
		var charge sql.NullFloat64
		if err := rows.Scan(&sp.Mechanism, &sp.Name, &sp.Composition, &phase, &charge); err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		sp.Phase = phase.String
		if charge.Valid {
			sp.Charge = &charge.Float64
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// Reactions lists the reactions of one mechanism in declaration order.
func (s *Store) Reactions(ctx context.Context, mechanism string) ([]Reaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.name, r.reaction_id, r.equation, r.kind, r.unit_factor, r.rate_units, r.governing_phase
		 FROM reactions r JOIN mechanisms m ON m.id = r.mechanism_id
		 WHERE m.name = ?
		 ORDER BY r.position`, mechanism)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Reaction
	for rows.Next() {
		var r Reaction
		var phase sql.NullString
		if err := rows.Scan(&r.Mechanism, &r.ID, &r.Equation, &r.Kind, &r.UnitFactor, &r.RateUnits, &phase); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		r.GoverningPhase = phase.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
