// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package cache

import (
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/vibecompass/internal/geo"
)

// SpatialGrid divides geographic space into cells for fast proximity
// queries. Instead of comparing a query point against every entry, only the
// cells overlapping the query's bounding box are scanned.
//
// Time Complexity:
//   - Insert: O(1)
//   - QueryNearby: O(k) where k = entries in the overlapping cells
//   - Remove: O(cell size)
type SpatialGrid[T any] struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*SpatialEntry[T]
	cellSize float64 // degrees
	entries  map[string]*SpatialEntry[T]
}

// CellKey represents a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// SpatialEntry is a point in the grid with its payload.
type SpatialEntry[T any] struct {
	ID    string
	Point geo.Point
	Value T

	cellKey CellKey
}

// NearbyEntry is a query result with its distance from the query point.
type NearbyEntry[T any] struct {
	ID         string
	Point      geo.Point
	Value      T
	DistanceKm float64
}

// NewSpatialGrid creates a grid whose cells are roughly cellSizeKm wide.
// Smaller cells scan fewer entries per query but touch more cells.
func NewSpatialGrid[T any](cellSizeKm float64) *SpatialGrid[T] {
	if cellSizeKm <= 0 {
		cellSizeKm = 25
	}

	return &SpatialGrid[T]{
		cells:    make(map[CellKey][]*SpatialEntry[T]),
		cellSize: cellSizeKm / 111.0,
		entries:  make(map[string]*SpatialEntry[T]),
	}
}

func (g *SpatialGrid[T]) cellKey(p geo.Point) CellKey {
	return CellKey{
		X: int(math.Floor(p.Lng / g.cellSize)),
		Y: int(math.Floor(p.Lat / g.cellSize)),
	}
}

// Insert adds or replaces the entry with the given id. Points outside the
// WGS84 ranges are ignored and Insert reports false.
func (g *SpatialGrid[T]) Insert(id string, p geo.Point, value T) bool {
	if !p.Valid() {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	entry := &SpatialEntry[T]{ID: id, Point: p, Value: value, cellKey: g.cellKey(p)}
	g.cells[entry.cellKey] = append(g.cells[entry.cellKey], entry)
	g.entries[id] = entry
	return true
}

// Remove removes an entry by id.
func (g *SpatialGrid[T]) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.entries[id]
	if !exists {
		return false
	}

	g.removeFromCellUnlocked(entry)
	delete(g.entries, id)
	return true
}

// removeFromCellUnlocked removes an entry from its cell (caller must hold lock).
func (g *SpatialGrid[T]) removeFromCellUnlocked(entry *SpatialEntry[T]) {
	cell := g.cells[entry.cellKey]
	for i, e := range cell {
		if e.ID == entry.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}

	if len(cell) == 0 {
		delete(g.cells, entry.cellKey)
		return
	}
	g.cells[entry.cellKey] = cell
}

// Get returns a copy of the entry with the given id.
func (g *SpatialGrid[T]) Get(id string) (SpatialEntry[T], bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entry, exists := g.entries[id]
	if !exists {
		return SpatialEntry[T]{}, false
	}
	return *entry, true
}

// QueryNearby returns every entry within radiusKm of center, nearest first
// with ties broken by id.
func (g *SpatialGrid[T]) QueryNearby(center geo.Point, radiusKm float64) []NearbyEntry[T] {
	if !center.Valid() || radiusKm < 0 || math.IsNaN(radiusKm) {
		return nil
	}

	sw, ne := geo.BoundingBox(center, radiusKm)
	lo, hi := g.cellKey(sw), g.cellKey(ne)

	g.mu.RLock()
	defer g.mu.RUnlock()

	var results []NearbyEntry[T]
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for _, entry := range g.cells[CellKey{X: x, Y: y}] {
				dist := geo.DistanceKm(center, entry.Point)
				if dist <= radiusKm {
					results = append(results, NearbyEntry[T]{
						ID:         entry.ID,
						Point:      entry.Point,
						Value:      entry.Value,
						DistanceKm: dist,
					})
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// Size returns the total number of entries.
func (g *SpatialGrid[T]) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// NumCells returns the number of non-empty cells.
func (g *SpatialGrid[T]) NumCells() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// Clear removes all entries.
func (g *SpatialGrid[T]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[CellKey][]*SpatialEntry[T])
	g.entries = make(map[string]*SpatialEntry[T])
}
