package rewriter

// testConst is a minimal Const implementation used only by this
// package's tests, standing in for the real object system's None,
// empty-string, small-int, and bool singletons.
type testConst struct {
	none     bool
	empty    bool
	hasInt   bool
	intVal   int64
	hasBool  bool
	boolVal  bool
}

func (c testConst) IsNone() bool        { return c.none }
func (c testConst) IsEmptyString() bool { return c.empty }
func (c testConst) SmallInt() (int64, bool) {
	return c.intVal, c.hasInt
}
func (c testConst) Bool() (bool, bool) { return c.boolVal, c.hasBool }

func noneConst() testConst     { return testConst{none: true} }
func emptyStrConst() testConst { return testConst{empty: true} }
func intConst(v int64) testConst {
	return testConst{hasInt: true, intVal: v}
}
func boolConst(v bool) testConst {
	return testConst{hasBool: true, boolVal: v}
}
func heapConst() testConst { return testConst{} } // not any encodable domain

type testFactory struct{}

func (testFactory) NewNone() Const              { return noneConst() }
func (testFactory) NewEmptyString() Const       { return emptyStrConst() }
func (testFactory) NewSmallInt(v int64) Const   { return intConst(v) }
