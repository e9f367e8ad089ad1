package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/fixgo/server/dao"
	"github.com/dekarrin/fixgo/server/dao/inmem"
	"github.com/dekarrin/fixgo/server/dao/sqlite"
)

// DBType is the type of a run-history datastore.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// ParseDBType parses a string found in a connection string into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(s) {
	case DatabaseSQLite.String():
		return DatabaseSQLite, nil
	case DatabaseInMemory.String():
		return DatabaseInMemory, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database configures fixgod's connection to its run-history store.
type Database struct {
	Type DBType

	// DataDir is where sqlite stores its data file. Only applicable when
	// Type is DatabaseSQLite.
	DataDir string
}

// Connect initializes the configured datastore for use.
func (db Database) Connect() (dao.RunRepository, error) {
	switch db.Type {
	case DatabaseInMemory:
		return inmem.NewRunRepository(), nil
	case DatabaseSQLite:
		if err := os.MkdirAll(db.DataDir, 0770); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return sqlite.NewRunRepository(db.DataDir)
	case DatabaseNone:
		return nil, fmt.Errorf("cannot connect to 'none' DB")
	default:
		return nil, fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// ParseDBConnString parses a "engine[:params]" connection string, e.g.
// "sqlite:/data" or "inmem", into a Database.
func ParseDBConnString(s string) (Database, error) {
	var paramStr string
	dbParts := strings.SplitN(s, ":", 2)
	if len(dbParts) == 2 {
		paramStr = strings.TrimSpace(dbParts[1])
	}

	dbEng, err := ParseDBType(strings.TrimSpace(dbParts[0]))
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	switch dbEng {
	case DatabaseInMemory:
		if paramStr != "" {
			return Database{}, fmt.Errorf("unsupported param(s) for in-memory DB engine: %s", paramStr)
		}
		return Database{Type: DatabaseInMemory}, nil
	case DatabaseSQLite:
		if paramStr == "" {
			return Database{}, fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		return Database{Type: DatabaseSQLite, DataDir: paramStr}, nil
	default:
		return Database{}, fmt.Errorf("unknown DB engine: %q", dbEng.String())
	}
}
