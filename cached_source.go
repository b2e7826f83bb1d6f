// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pubgrub

import "fmt"

// CachedSource wraps a Source and memoizes VersionsFor/IncompatibilitiesFor
// results, for sources whose underlying lookup is expensive (network,
// disk, database). It assumes results are immutable for the lifetime of
// one CachedSource — the same assumption spec.md §5 makes of Source for
// the duration of a single Solve call.
type CachedSource struct {
	source Source

	versionsCache     map[Package][]Version
	versionsCalls     int
	versionsCacheHits int

	incompatibilitiesCache     map[string][]*Incompatibility
	incompatibilitiesCalls     int
	incompatibilitiesCacheHits int
}

// NewCachedSource wraps source with a cache.
func NewCachedSource(source Source) *CachedSource {
	return &CachedSource{
		source:                 source,
		versionsCache:          make(map[Package][]Version),
		incompatibilitiesCache: make(map[string][]*Incompatibility),
	}
}

// Root implements Source.
func (c *CachedSource) Root() Package { return c.source.Root() }

// VersionsFor implements Source, caching by package only (not range,
// since VersionsFor must return every version regardless of range).
func (c *CachedSource) VersionsFor(constraint VersionConstraint) ([]Version, error) {
	c.versionsCalls++
	if versions, ok := c.versionsCache[constraint.Package]; ok {
		c.versionsCacheHits++
		return versions, nil
	}
	versions, err := c.source.VersionsFor(constraint)
	if err != nil {
		return nil, err
	}
	c.versionsCache[constraint.Package] = versions
	return versions, nil
}

// IncompatibilitiesFor implements Source, caching by package@version.
func (c *CachedSource) IncompatibilitiesFor(pkg Package, version Version) ([]*Incompatibility, error) {
	c.incompatibilitiesCalls++
	key := fmt.Sprintf("%s@%s", pkg.Value(), version)
	if incs, ok := c.incompatibilitiesCache[key]; ok {
		c.incompatibilitiesCacheHits++
		return incs, nil
	}
	incs, err := c.source.IncompatibilitiesFor(pkg, version)
	if err != nil {
		return nil, err
	}
	c.incompatibilitiesCache[key] = incs
	return incs, nil
}

// CacheStats reports cache performance.
type CacheStats struct {
	VersionsCalls     int
	VersionsCacheHits int
	VersionsHitRate   float64

	IncompatibilitiesCalls     int
	IncompatibilitiesCacheHits int
	IncompatibilitiesHitRate   float64

	TotalCalls     int
	TotalCacheHits int
	OverallHitRate float64
}

// Stats returns the current cache statistics.
func (c *CachedSource) Stats() CacheStats {
	stats := CacheStats{
		VersionsCalls:              c.versionsCalls,
		VersionsCacheHits:          c.versionsCacheHits,
		IncompatibilitiesCalls:     c.incompatibilitiesCalls,
		IncompatibilitiesCacheHits: c.incompatibilitiesCacheHits,
		TotalCalls:                 c.versionsCalls + c.incompatibilitiesCalls,
		TotalCacheHits:             c.versionsCacheHits + c.incompatibilitiesCacheHits,
	}
	if stats.VersionsCalls > 0 {
		stats.VersionsHitRate = float64(stats.VersionsCacheHits) / float64(stats.VersionsCalls)
	}
	if stats.IncompatibilitiesCalls > 0 {
		stats.IncompatibilitiesHitRate = float64(stats.IncompatibilitiesCacheHits) / float64(stats.IncompatibilitiesCalls)
	}
	if stats.TotalCalls > 0 {
		stats.OverallHitRate = float64(stats.TotalCacheHits) / float64(stats.TotalCalls)
	}
	return stats
}

// ClearCache drops all cached entries while keeping the underlying source.
func (c *CachedSource) ClearCache() {
	c.versionsCache = make(map[Package][]Version)
	c.incompatibilitiesCache = make(map[string][]*Incompatibility)
	c.versionsCalls, c.versionsCacheHits = 0, 0
	c.incompatibilitiesCalls, c.incompatibilitiesCacheHits = 0, 0
}

var _ Source = (*CachedSource)(nil)
