package rangeset_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/rogpeppe/primset/bitmap"
	"github.com/rogpeppe/primset/internal/setdebug"
	"github.com/rogpeppe/primset/interval"
	"github.com/rogpeppe/primset/rangeset"
	"github.com/rogpeppe/primset/set"
)

func TestMain(m *testing.M) {
	setdebug.Set(setdebug.Config{CheckInvariants: true})
	m.Run()
}

type iv = interval.Interval[int]

func TestAddAllThenRemoveSplits(t *testing.T) {
	var s rangeset.Set[int]
	qt.Assert(t, qt.IsTrue(s.AddAll([]int{1, 2, 3, 7, 8, 10})))
	assertRanges(t, &s, []iv{{First: 1, Last: 3}, {First: 7, Last: 8}, {First: 10, Last: 10}})
	qt.Assert(t, qt.Equals(s.Len(), 6))

	qt.Assert(t, qt.IsTrue(s.Remove(8)))
	assertRanges(t, &s, []iv{{First: 1, Last: 3}, {First: 7, Last: 7}, {First: 10, Last: 10}})
	qt.Assert(t, qt.Equals(s.Len(), 5))
}

var addTests = []struct {
	testName string
	add      []int
	want     []iv
}{{
	testName: "Empty",
	want:     []iv{},
}, {
	testName: "Single",
	add:      []int{4},
	want:     []iv{{First: 4, Last: 4}},
}, {
	testName: "MergeRight",
	add:      []int{5, 4},
	want:     []iv{{First: 4, Last: 5}},
}, {
	testName: "MergeLeft",
	add:      []int{4, 5},
	want:     []iv{{First: 4, Last: 5}},
}, {
	testName: "BridgeGap",
	add:      []int{1, 3, 2},
	want:     []iv{{First: 1, Last: 3}},
}, {
	testName: "Separate",
	add:      []int{10, 1, 5},
	want:     []iv{{First: 1, Last: 1}, {First: 5, Last: 5}, {First: 10, Last: 10}},
}, {
	testName: "Duplicates",
	add:      []int{3, 3, 4, 3},
	want:     []iv{{First: 3, Last: 4}},
}, {
	testName: "Zero",
	add:      []int{1, 0},
	want:     []iv{{First: 0, Last: 1}},
}}

func TestAdd(t *testing.T) {
	for _, test := range addTests {
		t.Run(test.testName, func(t *testing.T) {
			var s rangeset.Set[int]
			distinct := make(map[int]bool)
			for _, v := range test.add {
				qt.Assert(t, qt.Equals(s.Add(v), !distinct[v]))
				distinct[v] = true
			}
			assertRanges(t, &s, test.want)
			qt.Assert(t, qt.Equals(s.Len(), len(distinct)))

			// Adding the same values in bulk gives the same result.
			bulk := rangeset.Of(test.add...)
			qt.Assert(t, qt.IsTrue(bulk.Equal(&s)))
		})
	}
}

var removeTests = []struct {
	testName string
	remove   int
	want     []iv
	removed  bool
}{{
	testName: "Singleton",
	remove:   10,
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 8}},
	removed:  true,
}, {
	testName: "LowEndpoint",
	remove:   1,
	want:     []iv{{First: 2, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}},
	removed:  true,
}, {
	testName: "HighEndpoint",
	remove:   8,
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 7}, {First: 10, Last: 10}},
	removed:  true,
}, {
	testName: "Interior",
	remove:   3,
	want:     []iv{{First: 1, Last: 2}, {First: 4, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}},
	removed:  true,
}, {
	testName: "InGap",
	remove:   6,
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}},
}, {
	testName: "BeyondEnd",
	remove:   11,
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}},
}, {
	testName: "Negative",
	remove:   -1,
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}},
}}

func TestRemove(t *testing.T) {
	for _, test := range removeTests {
		t.Run(test.testName, func(t *testing.T) {
			s := rangeset.Of(1, 2, 3, 4, 5, 7, 8, 10)
			qt.Assert(t, qt.Equals(s.Remove(test.remove), test.removed))
			assertRanges(t, s, test.want)
			qt.Assert(t, qt.Equals(s.Len(), intervalsLen(test.want)))
		})
	}
}

func TestAddAllLeavesInputAlone(t *testing.T) {
	vals := []int{9, 3, 4, 3, 1, 10, 2}
	s := rangeset.Of(vals...)
	qt.Assert(t, qt.DeepEquals(vals, []int{9, 3, 4, 3, 1, 10, 2}))
	assertRanges(t, s, []iv{{First: 1, Last: 4}, {First: 9, Last: 10}})
	qt.Assert(t, qt.Equals(s.Len(), 6))

	qt.Assert(t, qt.IsTrue(s.AddAll([]int{5, 8, 20})))
	assertRanges(t, s, []iv{{First: 1, Last: 5}, {First: 8, Last: 10}, {First: 20, Last: 20}})
	qt.Assert(t, qt.IsFalse(s.AddAll([]int{1, 2, 20})))
	qt.Assert(t, qt.IsFalse(s.AddAll(nil)))
	qt.Assert(t, qt.Equals(s.Len(), 9))
}

var intervalTests = []struct {
	testName string
	add      iv
	remove   iv
	afterAdd []iv
	want     []iv
}{{
	testName: "SwallowSeveral",
	add:      iv{First: 2, Last: 12},
	remove:   iv{First: 0, Last: 0},
	afterAdd: []iv{{First: 1, Last: 12}, {First: 15, Last: 16}},
	want:     []iv{{First: 1, Last: 12}, {First: 15, Last: 16}},
}, {
	testName: "TouchBothSides",
	add:      iv{First: 6, Last: 6},
	remove:   iv{First: 4, Last: 9},
	afterAdd: []iv{{First: 1, Last: 8}, {First: 10, Last: 11}, {First: 15, Last: 16}},
	want:     []iv{{First: 1, Last: 3}, {First: 10, Last: 11}, {First: 15, Last: 16}},
}, {
	testName: "Disjoint",
	add:      iv{First: 13, Last: 13},
	remove:   iv{First: 12, Last: 14},
	afterAdd: []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 11}, {First: 13, Last: 13}, {First: 15, Last: 16}},
	want:     []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 11}, {First: 15, Last: 16}},
}, {
	testName: "SplitOne",
	add:      iv{First: 3, Last: 4},
	remove:   iv{First: 2, Last: 3},
	afterAdd: []iv{{First: 1, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 11}, {First: 15, Last: 16}},
	want:     []iv{{First: 1, Last: 1}, {First: 4, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 11}, {First: 15, Last: 16}},
}, {
	testName: "RemoveEverything",
	add:      iv{First: 0, Last: 20},
	remove:   iv{First: -5, Last: 100},
	afterAdd: []iv{{First: 0, Last: 20}},
	want:     []iv{},
}}

func TestIntervals(t *testing.T) {
	for _, test := range intervalTests {
		t.Run(test.testName, func(t *testing.T) {
			s := rangeset.Of(1, 2, 3, 4, 5, 7, 8, 10, 11, 15, 16)
			s.AddInterval(test.add)
			assertRanges(t, s, test.afterAdd)
			qt.Assert(t, qt.Equals(s.Len(), intervalsLen(test.afterAdd)))
			s.RemoveInterval(test.remove)
			assertRanges(t, s, test.want)
			qt.Assert(t, qt.Equals(s.Len(), intervalsLen(test.want)))
		})
	}
}

func TestIntervalResult(t *testing.T) {
	s := rangeset.Of(1, 2, 3)
	qt.Assert(t, qt.IsFalse(s.AddInterval(iv{First: 2, Last: 3})))
	qt.Assert(t, qt.IsTrue(s.AddInterval(iv{First: 3, Last: 4})))
	qt.Assert(t, qt.IsFalse(s.RemoveInterval(iv{First: 6, Last: 9})))
	qt.Assert(t, qt.IsFalse(s.RemoveInterval(iv{First: -9, Last: -1})))
	qt.Assert(t, qt.PanicMatches(func() {
		s.AddInterval(iv{First: 5, Last: 4})
	}, `interval \[5, 4\] is empty: illegal argument`))
	qt.Assert(t, qt.PanicMatches(func() {
		s.AddInterval(iv{First: -1, Last: 4})
	}, `range set cannot hold negative value -1: illegal argument`))
}

func TestNegative(t *testing.T) {
	var s rangeset.Set[int]
	qt.Assert(t, qt.PanicMatches(func() { s.Add(-2) }, `range set cannot hold negative value -2: illegal argument`))
	qt.Assert(t, qt.PanicMatches(func() { s.AddAll([]int{3, -2}) }, `range set cannot hold negative value -2: illegal argument`))
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.IsFalse(s.Contains(-2)))
}

func TestEmptyFirstLast(t *testing.T) {
	var s rangeset.Set[int]
	qt.Assert(t, qt.PanicMatches(func() { s.First() }, `First called on empty set: no such element`))
	qt.Assert(t, qt.PanicMatches(func() { s.Last() }, `Last called on empty set: no such element`))

	s.AddAll([]int{1, 2, 3, 10})
	v := s.SubSet(4, 10)
	qt.Assert(t, qt.Equals(v.Len(), 0))
	err := recoverError(func() { v.First() })
	qt.Assert(t, qt.ErrorIs(err, set.ErrNoSuchElement))
	qt.Assert(t, qt.ErrorMatches(err, `First called on empty view \[4, 10\): no such element`))
	err = recoverError(func() { v.Last() })
	qt.Assert(t, qt.ErrorMatches(err, `Last called on empty view \[4, 10\): no such element`))
}

var viewTests = []struct {
	testName string
	view     func(s *rangeset.Set[int]) *rangeset.View[int]
	want     []iv
}{{
	testName: "Head",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.HeadSet(8).(*rangeset.View[int]) },
	want:     []iv{{First: 1, Last: 3}, {First: 5, Last: 7}},
}, {
	testName: "HeadInGap",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.HeadSet(4).(*rangeset.View[int]) },
	want:     []iv{{First: 1, Last: 3}},
}, {
	testName: "Tail",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.TailSet(6).(*rangeset.View[int]) },
	want:     []iv{{First: 6, Last: 9}, {First: 20, Last: 25}},
}, {
	testName: "SubInsideOneInterval",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.SubSet(6, 8).(*rangeset.View[int]) },
	want:     []iv{{First: 6, Last: 7}},
}, {
	testName: "SubClipsBothEnds",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.SubSet(2, 22).(*rangeset.View[int]) },
	want:     []iv{{First: 2, Last: 3}, {First: 5, Last: 9}, {First: 20, Last: 21}},
}, {
	testName: "SubEmpty",
	view:     func(s *rangeset.Set[int]) *rangeset.View[int] { return s.SubSet(10, 20).(*rangeset.View[int]) },
	want:     []iv{},
}, {
	testName: "Nested",
	view: func(s *rangeset.Set[int]) *rangeset.View[int] {
		return s.TailSet(2).SubSet(3, 24).HeadSet(21).(*rangeset.View[int])
	},
	want: []iv{{First: 3, Last: 3}, {First: 5, Last: 9}, {First: 20, Last: 20}},
}}

func TestViews(t *testing.T) {
	for _, test := range viewTests {
		t.Run(test.testName, func(t *testing.T) {
			s := rangeset.Of(1, 2, 3, 5, 6, 7, 8, 9, 20, 21, 22, 23, 24, 25)
			before := s.Ranges()
			v := test.view(s)
			if diff := cmp.Diff(test.want, nonNil(v.Ranges())); diff != "" {
				t.Errorf("unexpected view ranges (-want +got):\n%s", diff)
			}
			want := expand(test.want)
			qt.Assert(t, qt.Equals(v.Len(), len(want)))
			qt.Assert(t, qt.DeepEquals(set.ToSlice[int](v), want))
			qt.Assert(t, qt.DeepEquals(iterate(v.Iterator()), want))
			if len(want) > 0 {
				qt.Assert(t, qt.Equals(v.First(), want[0]))
				qt.Assert(t, qt.Equals(v.Last(), want[len(want)-1]))
			}
			for x := range 30 {
				qt.Assert(t, qt.Equals(v.Contains(x), slices.Contains(want, x)), qt.Commentf("value %d", x))
			}
			// Reading through a view never changes the set.
			qt.Assert(t, qt.DeepEquals(s.Ranges(), before))
		})
	}
}

func TestViewTransparency(t *testing.T) {
	s := rangeset.Of(1, 2, 3, 10)
	v := s.SubSet(2, 8)
	qt.Assert(t, qt.Equals(v.Len(), 2))

	s.Add(5)
	s.Add(8)
	qt.Assert(t, qt.Equals(v.Len(), 3))
	qt.Assert(t, qt.Equals(v.Last(), 5))
	s.Remove(2)
	qt.Assert(t, qt.Equals(v.First(), 3))

	qt.Assert(t, qt.IsTrue(v.Add(4)))
	qt.Assert(t, qt.IsTrue(v.Add(7)))
	assertRanges(t, s, []iv{{First: 1, Last: 1}, {First: 3, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}})
	qt.Assert(t, qt.IsTrue(v.Remove(4)))
	assertRanges(t, s, []iv{{First: 1, Last: 1}, {First: 3, Last: 3}, {First: 5, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}})

	err := recoverError(func() { v.Add(8) })
	qt.Assert(t, qt.ErrorIs(err, set.ErrOutOfRange))
	qt.Assert(t, qt.ErrorMatches(err, `8 not in \[2, 8\): value out of range`))
	qt.Assert(t, qt.PanicMatches(func() { v.Remove(1) }, `1 not in \[2, 8\): value out of range`))
	qt.Assert(t, qt.PanicMatches(func() { v.HeadSet(9) }, `upper bound 9 not in \[2, 8\): value out of range`))
	qt.Assert(t, qt.PanicMatches(func() { v.SubSet(7, 3) }, `lower bound 7 greater than upper bound 3: illegal argument`))
}

func TestViewClear(t *testing.T) {
	s := rangeset.Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	s.SubSet(3, 6).Clear()
	assertRanges(t, s, []iv{{First: 1, Last: 2}, {First: 6, Last: 10}})
	s.TailSet(9).Clear()
	assertRanges(t, s, []iv{{First: 1, Last: 2}, {First: 6, Last: 8}})
	s.HeadSet(2).Clear()
	assertRanges(t, s, []iv{{First: 2, Last: 2}, {First: 6, Last: 8}})
	s.SubSet(4, 4).Clear()
	s.TailSet(20).Clear()
	assertRanges(t, s, []iv{{First: 2, Last: 2}, {First: 6, Last: 8}})
	qt.Assert(t, qt.Equals(s.Len(), 4))
}

func TestIteratorRemove(t *testing.T) {
	s := rangeset.Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15)
	// Removing interior values splits the interval under the iterator.
	for it := s.Iterator(); it.Next(); {
		if it.Value()%3 == 0 {
			it.Remove()
		}
	}
	assertRanges(t, s, []iv{{First: 1, Last: 2}, {First: 4, Last: 5}, {First: 7, Last: 8}, {First: 10, Last: 10}})

	// Removing every value leaves nothing behind.
	v := s.TailSet(4)
	for it := v.Iterator(); it.Next(); {
		it.Remove()
	}
	assertRanges(t, s, []iv{{First: 1, Last: 2}})

	it := s.Iterator()
	qt.Assert(t, qt.PanicMatches(it.Remove, `Remove called without a preceding successful Next: illegal state`))
	qt.Assert(t, qt.IsTrue(it.Next()))
	it.Remove()
	qt.Assert(t, qt.PanicMatches(it.Remove, `Remove called without a preceding successful Next: illegal state`))
	qt.Assert(t, qt.IsTrue(it.Next()))
	qt.Assert(t, qt.Equals(it.Value(), 2))
	qt.Assert(t, qt.IsFalse(it.Next()))
	qt.Assert(t, qt.PanicMatches(func() { it.Value() }, `Value called after end of iteration: no such element`))
}

func TestLargestValue(t *testing.T) {
	s := rangeset.Of[uint8](250, 255, 254)
	qt.Assert(t, qt.DeepEquals(set.ToSlice[uint8](s), []uint8{250, 254, 255}))
	qt.Assert(t, qt.DeepEquals(iterate(s.Iterator()), []uint8{250, 254, 255}))

	s.AddInterval(interval.New[uint8](251, 253))
	qt.Assert(t, qt.DeepEquals(s.Ranges(), []interval.Interval[uint8]{{First: 250, Last: 255}}))
	qt.Assert(t, qt.Equals(s.Len(), 6))
	qt.Assert(t, qt.Equals(s.TailSet(252).Len(), 4))

	s.Remove(255)
	s.Remove(250)
	qt.Assert(t, qt.Equals(s.String(), "{251 252 253 254}"))

	qt.Assert(t, qt.Equals(rangeset.FromSorted(slices.Values([]uint8{0, 1, 255})).Len(), 3))
}

func TestSizeOverflow(t *testing.T) {
	var s rangeset.Set[int64]
	err := recoverError(func() {
		s.AddInterval(interval.New[int64](0, math.MaxInt64))
	})
	qt.Assert(t, qt.ErrorIs(err, set.ErrIllegalArgument))
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.HasLen(s.Ranges(), 0))

	// Fill the set to exactly math.MaxInt members.
	qt.Assert(t, qt.IsTrue(s.AddInterval(interval.New[int64](0, math.MaxInt-1))))
	qt.Assert(t, qt.Equals(s.Len(), math.MaxInt))
	full := s.Ranges()

	qt.Assert(t, qt.PanicMatches(func() {
		s.Add(math.MaxInt)
	}, `cannot add 1 values to set of size \d+: illegal argument`))
	err = recoverError(func() {
		s.AddAll([]int64{math.MaxInt, 5})
	})
	qt.Assert(t, qt.ErrorIs(err, set.ErrIllegalArgument))
	err = recoverError(func() {
		s.AddInterval(interval.New[int64](10, math.MaxInt))
	})
	qt.Assert(t, qt.ErrorIs(err, set.ErrIllegalArgument))
	qt.Assert(t, qt.DeepEquals(s.Ranges(), full))
	qt.Assert(t, qt.Equals(s.Len(), math.MaxInt))

	// Values already present cost nothing.
	qt.Assert(t, qt.IsFalse(s.Add(7)))
	qt.Assert(t, qt.IsFalse(s.AddAll([]int64{5, 6, 100})))
	qt.Assert(t, qt.IsFalse(s.AddInterval(interval.New[int64](3, 1000))))

	qt.Assert(t, qt.IsTrue(s.Remove(3)))
	qt.Assert(t, qt.IsTrue(s.Add(3)))
	qt.Assert(t, qt.Equals(s.Len(), math.MaxInt))
}

func TestFromSorted(t *testing.T) {
	s := rangeset.FromSorted(slices.Values([]int{0, 1, 2, 4, 6, 7}))
	assertRanges(t, s, []iv{{First: 0, Last: 2}, {First: 4, Last: 4}, {First: 6, Last: 7}})
	qt.Assert(t, qt.Equals(s.Len(), 6))

	qt.Assert(t, qt.PanicMatches(func() {
		rangeset.FromSorted(slices.Values([]int{1, 3, 3}))
	}, `out of order value 3 after 3: illegal argument`))
	qt.Assert(t, qt.PanicMatches(func() {
		rangeset.FromSorted(slices.Values([]int{-1, 3}))
	}, `range set cannot hold negative value -1: illegal argument`))
}

func TestAlgebra(t *testing.T) {
	a := rangeset.Of(1, 2, 3, 4, 10, 11, 12)
	b := bitmap.Of(3, 4, 5, 11, 40)

	assertRanges(t, rangeset.Union[int](a, b), []iv{{First: 1, Last: 5}, {First: 10, Last: 12}, {First: 40, Last: 40}})
	assertRanges(t, rangeset.Intersection[int](a, b), []iv{{First: 3, Last: 4}, {First: 11, Last: 11}})
	assertRanges(t, rangeset.Difference[int](a, b), []iv{{First: 1, Last: 2}, {First: 10, Last: 10}, {First: 12, Last: 12}})
	assertRanges(t, rangeset.Difference[int](b.TailSet(5), a.HeadSet(11)), []iv{{First: 5, Last: 5}, {First: 11, Last: 11}, {First: 40, Last: 40}})

	// The operands are unchanged.
	assertRanges(t, a, []iv{{First: 1, Last: 4}, {First: 10, Last: 12}})
	qt.Assert(t, qt.Equals(b.Len(), 5))
}

func TestMarshalRoundTrip(t *testing.T) {
	s := rangeset.Of(0, 1, 2, 3, 99, 1000)
	data, err := s.MarshalBinary()
	qt.Assert(t, qt.IsNil(err))

	got := rangeset.Of(5)
	qt.Assert(t, qt.IsNil(got.UnmarshalBinary(data)))
	qt.Assert(t, qt.IsTrue(got.Equal(s)))

	err = got.UnmarshalBinary(data[:len(data)-1])
	qt.Assert(t, qt.ErrorIs(err, set.ErrCorrupt))
}

func TestClone(t *testing.T) {
	s := rangeset.Of(1, 2, 3)
	c := s.Clone()
	c.Remove(2)
	assertRanges(t, s, []iv{{First: 1, Last: 3}})
	assertRanges(t, c, []iv{{First: 1, Last: 1}, {First: 3, Last: 3}})
	qt.Assert(t, qt.IsFalse(c.Equal(s)))
	c.Add(2)
	qt.Assert(t, qt.IsTrue(c.Equal(s)))
}

func TestRandomized(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("random seed %d", seed)
	rnd := rand.New(rand.NewPCG(seed, seed))

	const maxVal = 200
	var s rangeset.Set[int]
	model := make(map[int]bool)
	for range 5000 {
		v := rnd.IntN(maxVal)
		switch rnd.IntN(10) {
		case 0:
			w := min(v+rnd.IntN(10), maxVal-1)
			s.AddInterval(iv{First: v, Last: w})
			for x := v; x <= w; x++ {
				model[x] = true
			}
		case 1:
			w := min(v+rnd.IntN(10), maxVal-1)
			s.RemoveInterval(iv{First: v, Last: w})
			for x := v; x <= w; x++ {
				delete(model, x)
			}
		case 2, 3, 4, 5:
			qt.Assert(t, qt.Equals(s.Add(v), !model[v]))
			model[v] = true
		default:
			qt.Assert(t, qt.Equals(s.Remove(v), model[v]))
			delete(model, v)
		}
		qt.Assert(t, qt.Equals(s.Len(), len(model)))
		assertNormalized(t, &s)
	}
	var want []int
	for x := range maxVal {
		if model[x] {
			want = append(want, x)
		}
	}
	qt.Assert(t, qt.DeepEquals(slices.Collect(s.All()), want))
}

func BenchmarkAdd(b *testing.B) {
	for b.Loop() {
		var s rangeset.Set[int]
		for i := range 10_000 {
			s.Add(i * 2 % 10_001)
		}
	}
}

func BenchmarkAddAll(b *testing.B) {
	vals := make([]int, 10_000)
	for i := range vals {
		vals[i] = i * 2 % 10_001
	}
	for b.Loop() {
		var s rangeset.Set[int]
		s.AddAll(vals)
	}
}

func assertRanges(t *testing.T, s *rangeset.Set[int], want []iv) {
	t.Helper()
	if diff := cmp.Diff(want, nonNil(s.Ranges())); diff != "" {
		t.Fatalf("unexpected ranges (-want +got):\n%s", diff)
	}
	assertNormalized(t, s)
}

func assertNormalized(t *testing.T, s *rangeset.Set[int]) {
	t.Helper()
	rs := s.Ranges()
	for i := 1; i < len(rs); i++ {
		if rs[i-1].CanMergeWith(rs[i]) || rs[i-1].First > rs[i].First {
			t.Fatalf("intervals %v and %v are not normalized", rs[i-1], rs[i])
		}
	}
}

func intervalsLen(rs []iv) int {
	n := 0
	for _, r := range rs {
		n += r.Len()
	}
	return n
}

func expand(rs []iv) []int {
	vals := []int{}
	for _, r := range rs {
		for v := r.First; v <= r.Last; v++ {
			vals = append(vals, v)
		}
	}
	return vals
}

func iterate[V any](it set.Iterator[V]) []V {
	vals := []V{}
	for it.Next() {
		vals = append(vals, it.Value())
	}
	return vals
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func recoverError(f func()) (err error) {
	defer func() {
		err = recover().(error)
	}()
	f()
	return errors.New("no panic")
}
