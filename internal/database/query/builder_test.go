// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package query

import (
	"testing"

	"github.com/tomtom215/vibecompass/internal/geo"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddBoundingBox(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddBoundingBox(geo.Point{Lat: 40, Lng: -75}, geo.Point{Lat: 41, Lng: -73})

	whereClause, args := wb.Build()
	expected := "latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	want := []interface{}{40.0, 41.0, -75.0, -73.0}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %v, want %v", i, args[i], want[i])
		}
	}
	if wb.Count() != 2 {
		t.Errorf("Expected count 2, got %d", wb.Count())
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIn("bucket", []string{"culture", "food", "nature"})
	wb.AddIn("region", nil)

	whereClause, args := wb.Build()
	expected := "bucket IN (?, ?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereBuilder_Chaining(t *testing.T) {
	whereClause, args := NewWhereBuilder().
		AddClause("rating >= ?", 4.0).
		AddIn("bucket", []string{"food"}).
		BuildWithPrefix()

	expected := "WHERE rating >= ? AND bucket IN (?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}
