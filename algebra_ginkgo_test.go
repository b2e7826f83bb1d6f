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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAlgebra(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Range and Term Algebra Suite")
}

var _ = Describe("VersionRange", func() {
	var (
		v1 = v("1.0.0")
		v2 = v("2.0.0")
		v3 = v("3.0.0")
	)

	Describe("Intersect", func() {
		It("narrows two overlapping intervals to their overlap", func() {
			a := Interval(v1, true, v3, false)
			b := Interval(v2, true, nil, false)
			got := a.Intersect(b)
			Expect(got.Include(v1)).To(BeFalse())
			Expect(got.Include(v2)).To(BeTrue())
			Expect(got.Include(v3)).To(BeFalse())
		})

		It("returns Empty for disjoint intervals", func() {
			a := Interval(v1, true, v2, false)
			b := Interval(v2, true, v3, false)
			Expect(a.Intersect(b).IsEmpty()).To(BeTrue())
		})

		It("is commutative", func() {
			a := Interval(v1, true, v3, true)
			b := AtLeast(v2, true)
			Expect(a.Intersect(b).Equal(b.Intersect(a))).To(BeTrue())
		})
	})

	Describe("Union", func() {
		It("merges touching intervals into one", func() {
			a := Interval(v1, true, v2, true)
			b := Interval(v2, false, v3, true)
			got := a.Union(b)
			Expect(got.Include(v2)).To(BeTrue())
			Expect(got.IsAny()).To(BeFalse())
			Expect(got.kind).To(Equal(rangeInterval))
		})

		It("keeps disjoint intervals apart as a Union", func() {
			a := Singleton(v1)
			b := Singleton(v3)
			got := a.Union(b)
			Expect(got.Include(v1)).To(BeTrue())
			Expect(got.Include(v2)).To(BeFalse())
			Expect(got.Include(v3)).To(BeTrue())
		})

		It("flattens unions of unions rather than nesting them", func() {
			a := Singleton(v1).Union(Singleton(v3))
			b := AtLeast(v("5.0.0"), true)
			got := a.Union(b)
			Expect(got.kind).To(Equal(rangeUnion))
			for _, child := range got.children {
				Expect(child.kind).To(Equal(rangeInterval))
			}
			Expect(got.Include(v1)).To(BeTrue())
			Expect(got.Include(v("5.0.0"))).To(BeTrue())
		})
	})

	Describe("Invert", func() {
		It("round-trips: double inversion is the identity", func() {
			r := Interval(v1, true, v2, false)
			Expect(r.Invert().Invert().Equal(r)).To(BeTrue())
		})

		It("inverts Empty to Any and back", func() {
			Expect(Empty().Invert().IsAny()).To(BeTrue())
			Expect(Any().Invert().IsEmpty()).To(BeTrue())
		})

		It("excludes exactly the original interval", func() {
			r := Interval(v1, true, v2, true)
			inv := r.Invert()
			Expect(inv.Include(v1)).To(BeFalse())
			Expect(inv.Include(v2)).To(BeFalse())
			Expect(inv.Include(v("0.5.0"))).To(BeTrue())
			Expect(inv.Include(v3)).To(BeTrue())
		})
	})

	Describe("Equal", func() {
		It("treats differently-constructed but equivalent ranges as equal", func() {
			a := Singleton(v1).Union(Interval(v2, true, v3, true))
			b := Interval(v2, true, v3, true).Union(Singleton(v1))
			Expect(a.Equal(b)).To(BeTrue())
		})
	})
})

var _ = Describe("Term", func() {
	foo := MakePackage("ginkgo-foo")
	v1 := v("1.0.0")
	v2 := v("2.0.0")

	Describe("Relation", func() {
		It("reports relSubset when one range contains the other", func() {
			wide := NewTerm(NewConstraint(foo, AtLeast(v1, true)))
			narrow := NewTerm(NewConstraint(foo, Singleton(v2)))
			Expect(narrow.Relation(wide)).To(Equal(relSubset))
		})

		It("reports relDisjoint for non-overlapping ranges", func() {
			a := NewTerm(NewConstraint(foo, Singleton(v1)))
			b := NewTerm(NewConstraint(foo, Singleton(v2)))
			Expect(a.Relation(b)).To(Equal(relDisjoint))
		})

		It("reports relOverlapping when ranges partially overlap", func() {
			a := NewTerm(NewConstraint(foo, Before(v2, true)))
			b := NewTerm(NewConstraint(foo, AtLeast(v1, true)))
			Expect(a.Relation(b)).To(Equal(relOverlapping))
		})
	})

	Describe("Negate", func() {
		It("is its own inverse", func() {
			t := NewTerm(NewConstraint(foo, Singleton(v1)))
			Expect(t.Negate().Negate()).To(Equal(t))
		})

		It("flips satisfaction for every version", func() {
			t := NewTerm(NewConstraint(foo, Singleton(v1)))
			neg := t.Negate()
			Expect(t.Satisfies(v1)).To(BeTrue())
			Expect(neg.Satisfies(v1)).To(BeFalse())
			Expect(neg.Satisfies(v2)).To(BeTrue())
		})
	})

	Describe("IsUnsatisfiable", func() {
		It("is true for a term over the Empty range", func() {
			t := NewTerm(NewConstraint(foo, Empty()))
			Expect(t.IsUnsatisfiable()).To(BeTrue())
		})

		It("is true for a negative term whose negation is Any", func() {
			t := NewNegativeTerm(NewConstraint(foo, Any()))
			Expect(t.IsUnsatisfiable()).To(BeTrue())
		})

		It("is false for any satisfiable positive term", func() {
			t := NewTerm(NewConstraint(foo, Singleton(v1)))
			Expect(t.IsUnsatisfiable()).To(BeFalse())
		})
	})

	Describe("Intersect and Difference", func() {
		It("Intersect narrows to the overlap of both terms' ranges", func() {
			a := NewTerm(NewConstraint(foo, AtLeast(v1, true)))
			b := NewTerm(NewConstraint(foo, Before(v2, true)))
			got := a.Intersect(b)
			Expect(got.Satisfies(v1)).To(BeTrue())
			Expect(got.Satisfies(v2)).To(BeTrue())
			Expect(got.Satisfies(v("3.0.0"))).To(BeFalse())
		})

		It("Difference removes the other term's range", func() {
			a := NewTerm(NewConstraint(foo, AtLeast(v1, true)))
			b := NewTerm(NewConstraint(foo, AtLeast(v2, true)))
			got := a.Difference(b)
			Expect(got.Satisfies(v1)).To(BeTrue())
			Expect(got.Satisfies(v2)).To(BeFalse())
		})
	})
})
