package param

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vango-dev/nestroute/pkg/routepath"
)

type status int

type slug string

func TestParse(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		if v, ok := Parse[string]("Hello World"); !ok || v != "Hello World" {
			t.Errorf("Parse[string] = %q, %v", v, ok)
		}
	})

	t.Run("Int", func(t *testing.T) {
		if v, ok := Parse[int]("-42"); !ok || v != -42 {
			t.Errorf("Parse[int] = %d, %v", v, ok)
		}
		if _, ok := Parse[int]("4x"); ok {
			t.Error("Parse[int](4x) should fail")
		}
	})

	t.Run("IntOverflow", func(t *testing.T) {
		if _, ok := Parse[int8]("200"); ok {
			t.Error("Parse[int8](200) should fail")
		}
		if v, ok := Parse[uint8]("200"); !ok || v != 200 {
			t.Errorf("Parse[uint8](200) = %d, %v", v, ok)
		}
		if _, ok := Parse[uint]("-1"); ok {
			t.Error("Parse[uint](-1) should fail")
		}
	})

	t.Run("Float", func(t *testing.T) {
		if v, ok := Parse[float64]("3.25"); !ok || v != 3.25 {
			t.Errorf("Parse[float64] = %v, %v", v, ok)
		}
		if v, ok := Parse[float32]("0.1"); !ok || v != float32(0.1) {
			t.Errorf("Parse[float32] = %v, %v", v, ok)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		if v, ok := Parse[bool]("true"); !ok || !v {
			t.Errorf("Parse[bool] = %v, %v", v, ok)
		}
		if _, ok := Parse[bool]("yes"); ok {
			t.Error("Parse[bool](yes) should fail")
		}
	})

	t.Run("NamedScalar", func(t *testing.T) {
		if v, ok := Parse[status]("3"); !ok || v != status(3) {
			t.Errorf("Parse[status] = %v, %v", v, ok)
		}
		if v, ok := Parse[slug]("hello-world"); !ok || v != slug("hello-world") {
			t.Errorf("Parse[slug] = %v, %v", v, ok)
		}
	})

	t.Run("TextUnmarshaler", func(t *testing.T) {
		want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		v, ok := Parse[time.Time]("2024-03-01T12:30:00Z")
		if !ok || !v.Equal(want) {
			t.Errorf("Parse[time.Time] = %v, %v", v, ok)
		}
		if _, ok := Parse[time.Time]("yesterday"); ok {
			t.Error("Parse[time.Time](yesterday) should fail")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		if _, ok := Parse[[]string]("a"); ok {
			t.Error("Parse[[]string] should fail")
		}
		if _, ok := Parse[struct{}]("a"); ok {
			t.Error("Parse[struct{}] should fail")
		}
	})
}

func TestFormatRoundTrip(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		for _, n := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
			got, ok := Parse[int64](Format(n))
			if !ok || got != n {
				t.Errorf("round trip %d = %d, %v", n, got, ok)
			}
		}
	})

	t.Run("Float64", func(t *testing.T) {
		for _, f := range []float64{0, 0.1, -2.5, 1e21, math.SmallestNonzeroFloat64, math.MaxFloat64} {
			got, ok := Parse[float64](Format(f))
			if !ok || got != f {
				t.Errorf("round trip %v = %v, %v", f, got, ok)
			}
		}
	})

	t.Run("Float32", func(t *testing.T) {
		for _, f := range []float32{0.1, 3.3, math.MaxFloat32} {
			got, ok := Parse[float32](Format(f))
			if !ok || got != f {
				t.Errorf("round trip %v = %v, %v", f, got, ok)
			}
		}
		if got := Format(float32(0.1)); got != "0.1" {
			t.Errorf("Format(float32(0.1)) = %q, want 0.1", got)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		if Format(true) != "true" || Format(false) != "false" {
			t.Errorf("Format(bool) = %q/%q", Format(true), Format(false))
		}
	})

	t.Run("Time", func(t *testing.T) {
		ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		if got := Format(ts); got != "2024-03-01T12:30:00Z" {
			t.Errorf("Format(time) = %q", got)
		}
	})
}

func TestSupported(t *testing.T) {
	if !Supported[int]() || !Supported[status]() || !Supported[time.Time]() {
		t.Error("scalar and text types should be supported")
	}
	if Supported[[]int]() || Supported[map[string]int]() {
		t.Error("collections should not be supported")
	}
}

func TestExtract(t *testing.T) {
	q := routepath.Query{
		{Key: "page", Value: "x"},
		{Key: "page", Value: "3"},
		{Key: "page", Value: "4"},
		{Key: "other", Value: "9"},
	}

	if got := Extract[int](q, "page"); got != 3 {
		t.Errorf("Extract(page) = %d, want first parsable 3", got)
	}
	if got := Extract[int](q, "missing"); got != 0 {
		t.Errorf("Extract(missing) = %d, want 0", got)
	}
}

func TestExtractOptional(t *testing.T) {
	q := routepath.Query{{Key: "search", Value: "go"}, {Key: "n", Value: "bad"}}

	if got := ExtractOptional[string](q, "search"); got == nil || *got != "go" {
		t.Errorf("ExtractOptional(search) = %v", got)
	}
	if got := ExtractOptional[int](q, "n"); got != nil {
		t.Errorf("ExtractOptional(n) = %v, want nil for unparsable", *got)
	}
	if got := ExtractOptional[string](q, "missing"); got != nil {
		t.Errorf("ExtractOptional(missing) = %v, want nil", *got)
	}

	empty := routepath.Query{{Key: "search", Value: ""}}
	if got := ExtractOptional[string](empty, "search"); got == nil || *got != "" {
		t.Errorf("ExtractOptional(empty value) = %v, want pointer to empty", got)
	}
}

func TestExtractAll(t *testing.T) {
	q := routepath.Query{
		{Key: "sys", Value: "2"},
		{Key: "x", Value: "1"},
		{Key: "sys", Value: "oops"},
		{Key: "sys", Value: "1"},
	}

	got := ExtractAll[int](q, "sys")
	if want := []int{2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAll(sys) = %v, want %v", got, want)
	}
	if got := ExtractAll[int](q, "missing"); got != nil {
		t.Errorf("ExtractAll(missing) = %v, want nil", got)
	}
}

func TestAppend(t *testing.T) {
	var q routepath.Query
	Append(&q, "page", 2)
	AppendOptional[string](&q, "search", nil)
	s := "go"
	AppendOptional(&q, "search", &s)
	AppendAll(&q, "sys", []int{3, 1})
	AppendAll[int](&q, "none", nil)

	want := routepath.Query{
		{Key: "page", Value: "2"},
		{Key: "search", Value: "go"},
		{Key: "sys", Value: "3"},
		{Key: "sys", Value: "1"},
	}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("query = %#v, want %#v", q, want)
	}

	if got := ExtractAll[int](q, "sys"); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("ExtractAll after AppendAll = %v", got)
	}
}
