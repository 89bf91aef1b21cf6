package rewriter

import "testing"

// oparg_of / obj_of round-trip on the encodable domain: None, the
// empty string, and small integers in [-64, 63].
func TestOpargRoundTrip(t *testing.T) {
	f := testFactory{}

	cases := []testConst{
		noneConst(),
		intConst(-1),
		intConst(-64),
		intConst(0),
		intConst(63),
		emptyStrConst(),
	}
	for _, c := range cases {
		tag, ok := opargFromObject(c)
		if !ok {
			t.Fatalf("expected %+v to be encodable", c)
		}
		got := objFromOparg(f, tag)
		gotC := got.(testConst)
		if gotC.none != c.none || gotC.empty != c.empty ||
			gotC.hasInt != c.hasInt || gotC.intVal != c.intVal {
			t.Fatalf("round trip mismatch: started with %+v, got %+v (tag=%#x)", c, gotC, tag)
		}
	}
}

func TestOpargNotEncodableOutsideDomain(t *testing.T) {
	if _, ok := opargFromObject(intConst(64)); ok {
		t.Fatal("64 should not be encodable (doesn't fit in 7-bit two's complement)")
	}
	if _, ok := opargFromObject(intConst(-65)); ok {
		t.Fatal("-65 should not be encodable")
	}
	if _, ok := opargFromObject(heapConst()); ok {
		t.Fatal("an arbitrary heap object should not be encodable")
	}
}
