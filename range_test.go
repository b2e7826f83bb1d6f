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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(s string) Version { return SimpleVersion(s) }

func TestInterval_ConstructionError(t *testing.T) {
	assert.Panics(t, func() {
		Interval(v("2.0.0"), true, v("1.0.0"), true)
	})
	assert.Panics(t, func() {
		Interval(v("1.0.0"), false, v("1.0.0"), true)
	})
}

func TestRange_IncludeBasics(t *testing.T) {
	r := Interval(v("1.0.0"), true, v("2.0.0"), false)
	assert.True(t, r.Include(v("1.0.0")))
	assert.True(t, r.Include(v("1.5.0")))
	assert.False(t, r.Include(v("2.0.0")))
	assert.False(t, r.Include(v("0.9.0")))
}

func TestRange_Any_IncludesEverything(t *testing.T) {
	r := Any()
	assert.True(t, r.Include(v("0.0.0")))
	assert.True(t, r.Include(v("999.0.0")))
	assert.True(t, r.IsAny())
}

func TestRange_Empty_IncludesNothing(t *testing.T) {
	r := Empty()
	assert.False(t, r.Include(v("1.0.0")))
	assert.True(t, r.IsEmpty())
}

func TestRange_Intersect(t *testing.T) {
	a := Interval(v("1.0.0"), true, v("3.0.0"), true)
	b := Interval(v("2.0.0"), true, v("4.0.0"), true)
	got := a.Intersect(b)
	assert.False(t, got.Include(v("1.5.0")))
	assert.True(t, got.Include(v("2.5.0")))
	assert.False(t, got.Include(v("3.5.0")))
}

func TestRange_Intersect_Disjoint(t *testing.T) {
	a := Before(v("1.0.0"), false)
	b := AtLeast(v("2.0.0"), true)
	assert.True(t, a.Intersect(b).IsEmpty())
	assert.False(t, a.Intersects(b))
}

func TestRange_Union_MergesTouchingIntervals(t *testing.T) {
	a := Interval(v("1.0.0"), true, v("2.0.0"), true)
	b := Interval(v("2.0.0"), false, v("3.0.0"), true)
	got := a.Union(b)
	require.True(t, got.kind == rangeInterval, "touching intervals must merge into one interval, not a union")
	assert.True(t, got.Include(v("2.0.0")))
	assert.True(t, got.Include(v("2.5.0")))
}

func TestRange_Union_KeepsGapsSeparate(t *testing.T) {
	a := Interval(v("1.0.0"), true, v("2.0.0"), false)
	b := Interval(v("3.0.0"), true, v("4.0.0"), false)
	got := a.Union(b)
	assert.False(t, got.Include(v("2.5.0")))
	assert.True(t, got.Include(v("1.5.0")))
	assert.True(t, got.Include(v("3.5.0")))
}

func TestRange_Invert_RoundTrips(t *testing.T) {
	r := Interval(v("1.0.0"), true, v("2.0.0"), false)
	inverted := r.Invert()
	assert.False(t, inverted.Include(v("1.5.0")))
	assert.True(t, inverted.Include(v("0.5.0")))
	assert.True(t, inverted.Include(v("2.0.0")))

	back := inverted.Invert()
	assert.True(t, back.Equal(r))
}

func TestRange_Invert_EmptyAndAny(t *testing.T) {
	assert.True(t, Empty().Invert().Equal(Any()))
	assert.True(t, Any().Invert().Equal(Empty()))
}

func TestRange_Invert_Union_DeMorgan(t *testing.T) {
	a := Interval(v("1.0.0"), true, v("2.0.0"), false)
	b := Interval(v("5.0.0"), true, v("6.0.0"), false)
	u := a.Union(b)

	assert.True(t, u.Invert().Intersect(a).IsEmpty())
	assert.True(t, u.Invert().Intersect(b).IsEmpty())
	assert.True(t, u.Invert().Include(v("3.0.0")))
}

func TestRange_Equal(t *testing.T) {
	a := Interval(v("1.0.0"), true, v("2.0.0"), true)
	b := Interval(v("1.0.0"), true, v("2.0.0"), true)
	assert.True(t, a.Equal(b))

	c := Interval(v("1.0.0"), true, v("2.0.0"), false)
	assert.False(t, a.Equal(c))
}

func TestRange_SingleVersion(t *testing.T) {
	r := Singleton(v("1.0.0"))
	got, ok := r.singleVersion()
	require.True(t, ok)
	assert.Equal(t, 0, got.Sort(v("1.0.0")))

	_, ok = Interval(v("1.0.0"), true, v("2.0.0"), true).singleVersion()
	assert.False(t, ok)
}
