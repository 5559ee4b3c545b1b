package suppress_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/suppress"
)

func TestMarker(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		line string
		tag  string
		ok   bool
	}{
		{name: "no marker", line: "nums.append(1)"},
		{name: "bare", line: "nums.append(1)  # noqa", ok: true},
		{name: "tagged", line: "nums.append(1)  # noqa: FURB113", tag: "FURB113", ok: true},
		{name: "other prefix", line: "x  # noqa: ABC123", tag: "ABC123", ok: true},
		{name: "trailing whitespace", line: "x  # noqa: FURB113 \t\r", tag: "FURB113", ok: true},
		{name: "not at the end", line: "x  # noqa and more"},
		{name: "malformed tag", line: "x  # noqa: FURB11"},
		{name: "lowercase tag", line: "x  # noqa: furb113"},
		{name: "several tags", line: "x  # noqa: FURB113, FURB105"},
		{name: "no space", line: "x  # noqa:FURB113"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			tag, ok := suppress.Marker(d.line)
			if ok != d.ok {
				t.Fatalf("wanted %v, got %v", d.ok, ok)
			}
			if tag != d.tag {
				t.Fatalf("wanted %q, got %q", d.tag, tag)
			}
		})
	}
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func furb(code int, filename string, line int) *diag.Diagnostic {
	return &diag.Diagnostic{Code: code, Prefix: "FURB", Message: "m", Filename: filename, Line: line, Column: 1}
}

func TestFilter(t *testing.T) { //nolint:funlen
	t.Parallel()
	fs := newFs(t, map[string]string{
		"a.py": `nums = []
nums.append(1)  # noqa
nums.append(2)  # noqa: FURB113
nums.append(3)  # noqa: FURB105
nums.append(4)
`,
	})
	data := []struct {
		name  string
		items []diag.Item
		exp   []diag.Item
	}{
		{
			name:  "bare marker suppresses every code",
			items: []diag.Item{furb(113, "a.py", 2), furb(105, "a.py", 2)},
			exp:   []diag.Item{},
		},
		{
			name:  "tagged marker suppresses the matching code",
			items: []diag.Item{furb(113, "a.py", 3)},
			exp:   []diag.Item{},
		},
		{
			name:  "tagged marker keeps other codes",
			items: []diag.Item{furb(113, "a.py", 4), furb(105, "a.py", 4)},
			exp:   []diag.Item{furb(113, "a.py", 4)},
		},
		{
			name:  "no marker",
			items: []diag.Item{furb(113, "a.py", 5)},
			exp:   []diag.Item{furb(113, "a.py", 5)},
		},
		{
			name:  "raw messages are kept",
			items: []diag.Item{diag.Raw("x  # noqa")},
			exp:   []diag.Item{diag.Raw("x  # noqa")},
		},
		{
			name:  "diagnostics without a filename are kept",
			items: []diag.Item{furb(113, "", 2)},
			exp:   []diag.Item{furb(113, "", 2)},
		},
		{
			name:  "line out of range is kept",
			items: []diag.Item{furb(113, "a.py", 100)},
			exp:   []diag.Item{furb(113, "a.py", 100)},
		},
		{
			name:  "unreadable file is kept",
			items: []diag.Item{furb(113, "missing.py", 1)},
			exp:   []diag.Item{furb(113, "missing.py", 1)},
		},
	}
	logE := logrus.NewEntry(logrus.New())
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			got := suppress.Filter(logE, suppress.NewSourceCache(fs), d.items)
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestFilter_appendRun(t *testing.T) {
	t.Parallel()
	// A run of appends reported on its first line is silenced by a marker
	// on that line only.
	fs := newFs(t, map[string]string{
		"b.py": "nums.append(1)  # noqa: FURB113\nnums.append(2)\n",
		"c.py": "nums.append(1)\nnums.append(2)  # noqa: FURB113\n",
	})
	cache := suppress.NewSourceCache(fs)
	logE := logrus.NewEntry(logrus.New())
	got := suppress.Filter(logE, cache, []diag.Item{furb(113, "b.py", 1), furb(113, "c.py", 1)})
	if diff := cmp.Diff([]diag.Item{furb(113, "c.py", 1)}, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestSourceCache_concurrent(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{"a.py": "a\nb\nc\n"})
	cache := suppress.NewSourceCache(fs)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			line, err := cache.Line("a.py", i%3+1)
			if err != nil {
				t.Error(err)
				return
			}
			if exp := string(rune('a' + i%3)); line != exp {
				t.Errorf("wanted %s, got %s", exp, line)
			}
		})
	}
	wg.Wait()
}

func TestSourceCache_Lines(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		content string
		exp     []string
	}{
		{name: "empty", content: "", exp: []string{}},
		{name: "lf", content: "a\nb\n", exp: []string{"a", "b"}},
		{name: "crlf", content: "a\r\nb", exp: []string{"a", "b"}},
		{name: "cr", content: "a\rb\r", exp: []string{"a", "b"}},
		{name: "blank lines", content: "a\n\n\nb", exp: []string{"a", "", "", "b"}},
		{name: "form feed", content: "a\fb\vc", exp: []string{"a", "b", "c"}},
		{name: "unicode separators", content: "a\u2028b\u0085c", exp: []string{"a", "b", "c"}},
		{name: "lf cr", content: "a\n\rb", exp: []string{"a", "", "b"}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			cache := suppress.NewSourceCache(newFs(t, map[string]string{"a.py": d.content}))
			lines, err := cache.Lines("a.py")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, lines); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestSourceCache_Lines_missing(t *testing.T) {
	t.Parallel()
	cache := suppress.NewSourceCache(newFs(t, nil))
	if _, err := cache.Lines("missing.py"); err == nil {
		t.Fatal("error must be returned")
	}
}

func TestFilter_oldMacLineEndings(t *testing.T) {
	t.Parallel()
	cache := suppress.NewSourceCache(newFs(t, map[string]string{"a.py": "x = 1\rprint(\"\")  # noqa\r"}))
	items := []diag.Item{&diag.Diagnostic{Filename: "a.py", Line: 2, Column: 1, Prefix: "FURB", Code: 105, Message: "m"}}
	if got := suppress.Filter(logrus.NewEntry(logrus.New()), cache, items); len(got) != 0 {
		t.Fatalf("the diagnostic on line 2 must be suppressed: %v", got)
	}
}
