package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("upsert team: %w", &pq.Error{Code: "23505"})) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatalf("expected 23503 not to be a unique violation")
	}
	if IsUniqueViolation(sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows not to be a unique violation")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected plain error not to be not found")
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullableString("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if v := nullableString("x"); v == nil || *v != "x" {
		t.Fatalf("expected pointer to x, got %v", v)
	}

	if nullInt64ToPtr(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil for invalid NullInt64")
	}
	if v := nullInt64ToPtr(sql.NullInt64{Int64: 7, Valid: true}); v == nil || *v != 7 {
		t.Fatalf("expected pointer to 7, got %v", v)
	}

	if intPtrToNullable(nil) != nil {
		t.Fatalf("expected nil for nil int pointer")
	}
	year := 2019
	if v := intPtrToNullable(&year); v == nil || *v != 2019 {
		t.Fatalf("expected pointer to 2019, got %v", v)
	}
}
