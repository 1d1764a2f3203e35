package database

import (
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
)

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("23505 must be a unique violation")
	}
	if !isUniqueViolation(errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")) {
		t.Fatal("Wrapped 23505 must be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is a foreign key violation")
	}
	if isUniqueViolation(fmt.Errorf("connection reset")) {
		t.Fatal("Plain errors are not unique violations")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	err := fmt.Errorf("save snapshot: %w", &DuplicateKey{&pgconn.PgError{Code: "23505", Message: "duplicate key"}})
	if !IsDuplicateKey(err) {
		t.Fatal("Expected wrapped DuplicateKey to be detected")
	}
	if IsDuplicateKey(fmt.Errorf("other")) {
		t.Fatal("Unexpected DuplicateKey")
	}
}
