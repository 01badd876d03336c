package repository

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// statementSeparator delimits statements in a bootstrap script.
// Seed data must not contain it inside string literals.
const statementSeparator = ";"

//go:embed sql/init_db.sql
var bundled embed.FS

var errEmptyScript = errors.New("bootstrap script contains no statements")

// Script locates the bootstrap statements that create and seed the points table.
type Script struct {
	FS   fs.FS  // FS holds the script file.
	Name string // Name is the path of the script inside FS.
}

// DefaultScript returns the script bundled into the binary.
func DefaultScript() Script {
	return Script{FS: bundled, Name: "sql/init_db.sql"}
}

// Statements reads the script and returns its non-blank statements in order.
func (s Script) Statements() ([]string, error) {
	data, err := fs.ReadFile(s.FS, s.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap script %s: %w", s.Name, err)
	}

	var statements []string
	for _, part := range strings.Split(string(data), statementSeparator) {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}

	if len(statements) == 0 {
		return nil, errEmptyScript
	}

	return statements, nil
}
