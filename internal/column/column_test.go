package column

import (
	"reflect"
	"testing"
)

func TestDelimitedDecompose(t *testing.T) {
	conv := Delimited{Sep: "-"}
	cases := []struct {
		name string
		want Key
		ok   bool
	}{
		{"Colonial Heights-State", Key{"Colonial Heights", "State"}, true},
		{"MPO-All", Key{"MPO", "All"}, true},
		{"Non-Interstate NHS-LOTTR", Key{"Non-Interstate NHS", "LOTTR"}, true},
		{"Regional", Key{}, false},
		{"-State", Key{}, false},
		{"MPO-", Key{}, false},
	}
	for _, tc := range cases {
		got, ok := conv.Decompose(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Decompose(%q) = %+v, %t; want %+v, %t", tc.name, got, ok, tc.want, tc.ok)
		}
		if ok && conv.Compose(got) != tc.name {
			t.Errorf("Compose(%+v) = %q, want %q", got, conv.Compose(got), tc.name)
		}
	}
}

func TestDelimitedDefaultsToDash(t *testing.T) {
	got, ok := Delimited{}.Decompose("Hopewell-Local")
	if !ok || got != (Key{"Hopewell", "Local"}) {
		t.Fatalf("Decompose = %+v, %t", got, ok)
	}
}

func TestPrefixedDecompose(t *testing.T) {
	conv := Prefixed{Codes: []string{"hw", "ch", "pb", "chx"}}
	cases := []struct {
		name string
		want Key
		ok   bool
	}{
		{"hwAM", Key{"hw", "AM"}, true},
		{"chGood", Key{"ch", "Good"}, true},
		{"chxPM", Key{"chx", "PM"}, true},
		{"vaAM", Key{}, false},
		{"hw", Key{}, false},
	}
	for _, tc := range cases {
		got, ok := conv.Decompose(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Decompose(%q) = %+v, %t; want %+v, %t", tc.name, got, ok, tc.want, tc.ok)
		}
		if ok && conv.Compose(got) != tc.name {
			t.Errorf("Compose(%+v) = %q, want %q", got, conv.Compose(got), tc.name)
		}
	}
}

func TestBuildExcludesUnresolvedColumns(t *testing.T) {
	columns := []string{"hwAM", "hwPM", "vaAM", "chAM", "chPM", "vaPM"}
	idx, unresolved := Build(Prefixed{Codes: []string{"hw", "ch"}}, columns)

	if !reflect.DeepEqual(unresolved, []string{"vaAM", "vaPM"}) {
		t.Fatalf("unresolved = %v", unresolved)
	}
	if !reflect.DeepEqual(idx.Entities(), []string{"hw", "ch"}) {
		t.Fatalf("Entities() = %v", idx.Entities())
	}
	if !reflect.DeepEqual(idx.SubDimensions(), []string{"AM", "PM"}) {
		t.Fatalf("SubDimensions() = %v", idx.SubDimensions())
	}
	if col, ok := idx.Column("hw", "PM"); !ok || col != "hwPM" {
		t.Fatalf("Column(hw, PM) = %q, %t", col, ok)
	}
	if _, ok := idx.Column("va", "AM"); ok {
		t.Fatal("unresolved entity should not be addressable")
	}
	if idx.HasEntity("va") || !idx.HasSubDimension("AM") {
		t.Fatal("HasEntity/HasSubDimension mismatch")
	}
}
