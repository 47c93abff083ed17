package style

import (
	"reflect"
	"testing"
)

func f(v float64) *float64 { return &v }
func str(v string) *string { return &v }

func TestMergeFillsUnsetOnly(t *testing.T) {
	child := &BlockStyle{
		FontProps: FontProps{FontSize: f(14)},
	}
	parent := &BlockStyle{
		FontProps: FontProps{FontSize: f(11), FontFamily: str("Serif")},
		TextProps: TextProps{Indent: f(12)},
	}

	child.MergeFrom(parent)

	if *child.FontSize != 14 {
		t.Errorf("set field was overwritten: font size = %v, want 14", *child.FontSize)
	}
	if child.FontFamily == nil || *child.FontFamily != "Serif" {
		t.Errorf("unset field was not filled: font family = %v", child.FontFamily)
	}
	if child.Indent == nil || *child.Indent != 12 {
		t.Errorf("unset field was not filled: indent = %v", child.Indent)
	}
}

func TestMergeIdempotent(t *testing.T) {
	parent := &BlockStyle{
		FontProps: FontProps{FontSize: f(11), FontWeight: wp(WeightBold)},
		BoxProps:  BoxProps{MarginTop: f(6)},
	}

	once := &BlockStyle{FontProps: FontProps{FontSize: f(14)}}
	once.MergeFrom(parent)

	twice := once.Clone()
	twice.MergeFrom(parent)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second merge changed the bag:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeOnEmptyEqualsParentCopy(t *testing.T) {
	parent := &SectionStyle{
		FontProps: FontProps{FontSize: f(11), Color: str("#000000")},
		TextProps: TextProps{LineHeight: f(1.3)},
		BoxProps:  BoxProps{MarginLeft: f(18)},
	}

	empty := New(KindSection)
	empty.MergeFrom(parent)

	if !reflect.DeepEqual(empty, parent.Clone()) {
		t.Errorf("empty bag merged with parent differs from parent copy:\ngot:  %+v\nwant: %+v", empty, parent)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := &RunStyle{
		FontProps:     FontProps{FontSize: f(10)},
		Letterspacing: f(0.5),
	}
	cp := orig.Clone().(*RunStyle)

	*cp.FontSize = 99
	*cp.Letterspacing = 9

	if *orig.FontSize != 10 {
		t.Errorf("clone aliases font size: original changed to %v", *orig.FontSize)
	}
	if *orig.Letterspacing != 0.5 {
		t.Errorf("clone aliases letterspacing: original changed to %v", *orig.Letterspacing)
	}
}

func TestMergeAcrossKindsFillsSharedGroups(t *testing.T) {
	table := &TableStyle{
		FontProps: FontProps{FontSize: f(9), FontFamily: str("Mono")},
		BoxProps:  BoxProps{BorderWidth: f(1)},
	}

	cell := &CellStyle{}
	cell.MergeFrom(table)

	if cell.FontSize == nil || *cell.FontSize != 9 {
		t.Errorf("cell font size = %v, want 9 from the table bag", cell.FontSize)
	}
	if cell.BorderWidth == nil || *cell.BorderWidth != 1 {
		t.Errorf("cell border width = %v, want 1 from the table bag", cell.BorderWidth)
	}
	// VerticalAlign exists only on cells, the table bag cannot supply it
	if cell.VerticalAlign != nil {
		t.Errorf("cell vertical align = %v, want unset", cell.VerticalAlign)
	}
}

func TestMergeRunFromBlock(t *testing.T) {
	block := &BlockStyle{
		FontProps: FontProps{FontSize: f(12), FontSlant: sp(SlantItalic)},
		TextProps: TextProps{Indent: f(12)},
	}

	run := &RunStyle{FontProps: FontProps{FontSize: f(8)}}
	run.MergeFrom(block)

	if *run.FontSize != 8 {
		t.Errorf("run font size = %v, want 8 kept", *run.FontSize)
	}
	if run.FontSlant == nil || *run.FontSlant != SlantItalic {
		t.Errorf("run font slant = %v, want italic from the block", run.FontSlant)
	}
}

func TestMergeNilParent(t *testing.T) {
	s := &BlockStyle{FontProps: FontProps{FontSize: f(14)}}
	s.MergeFrom(nil)
	if *s.FontSize != 14 {
		t.Errorf("merge with nil parent changed the bag: font size = %v", *s.FontSize)
	}
}

func TestNewCoversEveryKind(t *testing.T) {
	for kind := range kindNames {
		bag := New(kind)
		if bag.Kind() != kind {
			t.Errorf("New(%s) built a bag reporting kind %s", kind, bag.Kind())
		}
	}
}

func wp(v FontWeight) *FontWeight { return &v }
func sp(v FontSlant) *FontSlant   { return &v }
