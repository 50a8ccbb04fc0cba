package routepath

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "a=1", want: Query{{"a", "1"}}},
		{name: "repeated", raw: "a=1&a=2", want: Query{{"a", "1"}, {"a", "2"}}},
		{name: "no value", raw: "flag&a=1", want: Query{{"flag", ""}, {"a", "1"}}},
		{name: "empty pieces skipped", raw: "&&a=1&", want: Query{{"a", "1"}}},
		{name: "plus is space", raw: "q=a+b", want: Query{{"q", "a b"}}},
		{name: "escaped", raw: "k%26y=v%3D1", want: Query{{"k&y", "v=1"}}},
		{name: "bad escape skipped", raw: "a=%GG&b=2", want: Query{{"b", "2"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseQuery(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseQuery(%q) = %#v, want %#v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestQueryAccessors(t *testing.T) {
	var q Query
	q.Add("tag", "b")
	q.Add("page", "2")
	q.Add("tag", "a")

	if got := q.Values("tag"); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Values(tag) = %v, want [b a]", got)
	}
	if got := q.Values("missing"); got != nil {
		t.Errorf("Values(missing) = %v, want nil", got)
	}
	if v, ok := q.Get("page"); !ok || v != "2" {
		t.Errorf("Get(page) = %q, %v, want 2, true", v, ok)
	}
	if _, ok := q.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
	if got := q.Encode(); got != "tag=b&page=2&tag=a" {
		t.Errorf("Encode() = %q", got)
	}
}
