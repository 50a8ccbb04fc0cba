package routepath

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []string
		wantErr error
	}{
		{name: "root", path: "/", want: nil},
		{name: "empty", path: "", want: nil},
		{name: "single", path: "/bar", want: []string{"bar"}},
		{name: "nested", path: "/bar/42/d2", want: []string{"bar", "42", "d2"}},
		{name: "trailing slash dropped", path: "/bar/42/", want: []string{"bar", "42"}},
		{name: "inner empty kept", path: "/bar//d2", want: []string{"bar", "", "d2"}},
		{name: "no leading slash", path: "bar/42", want: []string{"bar", "42"}},
		{name: "encoded space", path: "/hello%20world/x", want: []string{"hello world", "x"}},
		{name: "encoded slash stays in segment", path: "/a%2Fb/c", want: []string{"a/b", "c"}},
		{name: "invalid escape", path: "/bad/%GG", wantErr: ErrInvalidPercentEscape},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitPath(tc.path)
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Errorf("SplitPath(%q) error = %v, want %v", tc.path, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitPath(%q) unexpected error = %v", tc.path, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitPath(%q) = %#v, want %#v", tc.path, got, tc.want)
			}
		})
	}
}

func TestSegmentCount(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"", 0},
		{"/", 0},
		{"/app", 1},
		{"/app/", 1},
		{"/app/admin", 2},
		{"app/admin/", 2},
	}

	for _, tc := range tests {
		if got := SegmentCount(tc.path); got != tc.want {
			t.Errorf("SegmentCount(%q) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{nil, "/"},
		{[]string{"bar"}, "/bar"},
		{[]string{"bar", "42", "d2"}, "/bar/42/d2"},
		{[]string{"hello world"}, "/hello%20world"},
		{[]string{"a/b"}, "/a%2Fb"},
	}

	for _, tc := range tests {
		if got := JoinPath(tc.segments); got != tc.want {
			t.Errorf("JoinPath(%q) = %q, want %q", tc.segments, got, tc.want)
		}
	}
}

func TestSplitLocation(t *testing.T) {
	segments, query, err := SplitLocation("/bar/42/?tag=a&tag=b&q=hello+world#top")
	if err != nil {
		t.Fatalf("SplitLocation error = %v", err)
	}
	if want := []string{"bar", "42"}; !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %#v, want %#v", segments, want)
	}
	want := Query{{"tag", "a"}, {"tag", "b"}, {"q", "hello world"}}
	if !reflect.DeepEqual(query, want) {
		t.Errorf("query = %#v, want %#v", query, want)
	}
}

func TestJoinLocation(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		query    Query
		want     string
	}{
		{name: "root without query", want: "/"},
		{name: "path only", segments: []string{"bar", "42"}, want: "/bar/42"},
		{
			name:     "repeated keys keep order",
			segments: []string{"search"},
			query:    Query{{"tag", "b"}, {"tag", "a"}, {"q", "x y"}},
			want:     "/search?tag=b&tag=a&q=x+y",
		},
		{name: "empty query renders no question mark", segments: []string{"a"}, query: Query{}, want: "/a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoinLocation(tc.segments, tc.query); got != tc.want {
				t.Errorf("JoinLocation() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocationRoundTrip(t *testing.T) {
	segments := []string{"files", "a/b c", "100%", "ünïcode"}
	query := Query{{"k&ey", "v=1"}, {"k&ey", "v 2"}, {"empty", ""}}

	location := JoinLocation(segments, query)
	gotSegments, gotQuery, err := SplitLocation(location)
	if err != nil {
		t.Fatalf("SplitLocation(%q) error = %v", location, err)
	}
	if !reflect.DeepEqual(gotSegments, segments) {
		t.Errorf("segments = %#v, want %#v", gotSegments, segments)
	}
	if !reflect.DeepEqual(gotQuery, query) {
		t.Errorf("query = %#v, want %#v", gotQuery, query)
	}
}

func TestSplitPathAndQuery(t *testing.T) {
	tests := []struct {
		input     string
		wantPath  string
		wantQuery string
	}{
		{"/path?query=value", "/path", "query=value"},
		{"/path", "/path", ""},
		{"/path?", "/path", ""},
		{"/path?a=1&b=2", "/path", "a=1&b=2"},
		{"/path?a=1#frag", "/path", "a=1"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			gotPath, gotQuery := SplitPathAndQuery(tc.input)
			if gotPath != tc.wantPath {
				t.Errorf("SplitPathAndQuery(%q) path = %q, want %q", tc.input, gotPath, tc.wantPath)
			}
			if gotQuery != tc.wantQuery {
				t.Errorf("SplitPathAndQuery(%q) query = %q, want %q", tc.input, gotQuery, tc.wantQuery)
			}
		})
	}
}
