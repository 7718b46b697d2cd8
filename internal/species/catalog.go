package species

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// defaultWeightsJSON seeds the catalog on first attach. Per-nucleon masses
// in MeV, after the CIAAW isotope tables.
//
//go:embed atomic_weights_mev.json
var defaultWeightsJSON []byte

// defaultWeightsSource names the built-in seed in import provenance rows.
const defaultWeightsSource = "builtin:atomic_weights_mev.json"

// dbFileName is the catalog database file created inside the data directory.
const dbFileName = "species.db"

// Catalog errors.
var (
	ErrAlreadyAttached = errors.New("catalog is already attached")
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrUnknownSpecies  = errors.New("no atomic weight recorded for species")
)

// Config holds parameters for Catalog.Attach.
type Config struct {
	// DataDir is the directory holding the catalog database. Created if
	// missing. Empty means the current directory.
	DataDir string

	// WeightsFile optionally overrides the built-in seed with an external
	// JSON weights table; it is imported on first attach only.
	WeightsFile string
}

// Species is a fully resolved particle species, ready to hand to the beam
// engine.
type Species struct {
	Symbol   string
	Nucleons int
	Charge   int
	Mass     float64 // total rest mass [GeV/c^2]
}

// Entry is one row of the weight catalog.
type Entry struct {
	Symbol         string
	Nucleons       int     // 0 for an element-default entry
	MassPerNucleon float64 // [GeV/c^2]
}

// Catalog is the SQLite-backed atomic weight lookup table. Attach it before
// use and Detach when done.
type Catalog struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
}

// NewCatalog creates a detached catalog; call Attach with a Config to
// initialize it.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Attach creates the data directory if needed, opens the catalog database,
// initializes the schema, and seeds the weights table when it is empty. The
// seed comes from Config.WeightsFile when set, otherwise from the built-in
// table. Returns ErrAlreadyAttached when called twice.
func (c *Catalog) Attach(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return ErrAlreadyAttached
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initialize schema: %w", err)
	}

	if err := seedIfEmpty(db, cfg.WeightsFile); err != nil {
		db.Close()
		return err
	}

	c.db = db
	c.attached = true
	return nil
}

// Detach closes the catalog database. Detaching a detached catalog is an
// error.
func (c *Catalog) Detach() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return ErrCatalogDetached
	}
	err := c.db.Close()
	c.db = nil
	c.attached = false
	return err
}

// seedIfEmpty populates an empty weights table from the configured or
// built-in weights JSON. Seeding is idempotent across attaches.
func seedIfEmpty(db *sql.DB, weightsFile string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM weights").Scan(&count); err != nil {
		return fmt.Errorf("counting weights: %w", err)
	}
	if count > 0 {
		return nil
	}

	source := defaultWeightsSource
	data := defaultWeightsJSON
	if weightsFile != "" {
		b, err := os.ReadFile(weightsFile)
		if err != nil {
			return fmt.Errorf("read weights file: %w", err)
		}
		source = weightsFile
		data = b
	}
	return importWeights(db, source, data)
}

// Resolve parses a species identifier and combines it with the catalog into
// the rest mass and charge state for the beam engine. The total mass is the
// nucleon count times the per-nucleon weight; an isotope-specific weight is
// preferred over the element default.
func (c *Catalog) Resolve(identifier string) (Species, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return Species{}, err
	}

	w, err := c.Weight(id.Symbol, id.Nucleons)
	if err != nil {
		return Species{}, err
	}

	return Species{
		Symbol:   id.Symbol,
		Nucleons: id.Nucleons,
		Charge:   id.Charge,
		Mass:     float64(id.Nucleons) * w,
	}, nil
}

// Weight returns the per-nucleon mass in GeV for the given element symbol
// and nucleon count. Falls back to the element-default entry when no
// isotope-specific row exists; returns ErrUnknownSpecies when neither does.
func (c *Catalog) Weight(symbol string, nucleons int) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return 0, ErrCatalogDetached
	}

	var w float64
	err := c.db.QueryRow(
		`SELECT mass_per_nucleon_gev FROM weights
		 WHERE symbol = ? AND nucleons IN (?, 0)
		 ORDER BY nucleons DESC LIMIT 1`,
		symbol, nucleons,
	).Scan(&w)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %d%s", ErrUnknownSpecies, nucleons, symbol)
	}
	if err != nil {
		return 0, fmt.Errorf("query weight: %w", err)
	}
	return w, nil
}

// List returns all catalog entries ordered by symbol, then nucleon count.
func (c *Catalog) List() ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return nil, ErrCatalogDetached
	}

	rows, err := c.db.Query(
		"SELECT symbol, nucleons, mass_per_nucleon_gev FROM weights ORDER BY symbol, nucleons")
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Symbol, &e.Nucleons, &e.MassPerNucleon); err != nil {
			return nil, fmt.Errorf("scan weight row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Import is one provenance row recorded when a weights table is loaded.
type Import struct {
	ImportID  string
	Source    string
	Entries   int
	CreatedAt time.Time
}

// Imports returns the provenance of every weights load, oldest first.
func (c *Catalog) Imports() ([]Import, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return nil, ErrCatalogDetached
	}

	rows, err := c.db.Query(
		"SELECT import_id, source, entries, created_at FROM imports ORDER BY created_at, import_id")
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		var createdAt string
		if err := rows.Scan(&imp.ImportID, &imp.Source, &imp.Entries, &createdAt); err != nil {
			return nil, fmt.Errorf("scan import row: %w", err)
		}
		if imp.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse import timestamp: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// ImportFile loads a JSON weights table from path into the catalog,
// replacing any overlapping entries. The file maps element symbols either
// directly to a per-nucleon mass in MeV or to a nested table keyed by
// nucleon count, matching the shapes produced by the atomic-weight fetch
// tooling.
func (c *Catalog) ImportFile(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return ErrCatalogDetached
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read weights file: %w", err)
	}
	return importWeights(c.db, path, data)
}

// importWeights parses a weights JSON document and inserts its entries in a
// single transaction together with a provenance row identifying the import.
func importWeights(db *sql.DB, source string, data []byte) error {
	entries, err := parseWeightsJSON(data)
	if err != nil {
		return fmt.Errorf("parse weights from %s: %w", source, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no weight entries in %s", source)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	importID := uuid.NewString()
	_, err = tx.Exec(
		"INSERT INTO imports (import_id, source, entries, created_at) VALUES (?, ?, ?, ?)",
		importID, source, len(entries), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO weights (symbol, nucleons, mass_per_nucleon_gev, import_id)
			 VALUES (?, ?, ?, ?)`,
			e.Symbol, e.Nucleons, e.MassPerNucleon, importID)
		if err != nil {
			return fmt.Errorf("insert weight %s: %w", e.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// parseWeightsJSON accepts both weight table shapes: a flat
// {symbol: perNucleonMeV} mapping and the isotope-keyed
// {symbol: {nucleons: perNucleonMeV}} one. Values are converted to GeV.
func parseWeightsJSON(data []byte) ([]Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var entries []Entry
	for symbol, value := range raw {
		symbol = canonicalSymbol(symbol)

		var flat float64
		if err := json.Unmarshal(value, &flat); err == nil {
			entries = append(entries, Entry{Symbol: symbol, Nucleons: 0, MassPerNucleon: flat / 1e3})
			continue
		}

		var nested map[string]float64
		if err := json.Unmarshal(value, &nested); err != nil {
			return nil, fmt.Errorf("entry %q is neither a number nor a nucleon table", symbol)
		}
		for key, mev := range nested {
			nucleons, err := strconv.Atoi(key)
			if err != nil || nucleons < 1 {
				return nil, fmt.Errorf("entry %q has invalid nucleon count %q", symbol, key)
			}
			entries = append(entries, Entry{Symbol: symbol, Nucleons: nucleons, MassPerNucleon: mev / 1e3})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Symbol != entries[j].Symbol {
			return entries[i].Symbol < entries[j].Symbol
		}
		return entries[i].Nucleons < entries[j].Nucleons
	})
	return entries, nil
}
