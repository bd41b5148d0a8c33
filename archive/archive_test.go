package archive

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for _, n := range names {
		fw, err := w.Create(n)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", n, err)
		}
		if _, err := fw.Write([]byte("content of " + n)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestIsArchive(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(text, []byte("PK is not enough"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]bool{
		makeZip(t, "a.txt"): true,
		text:                false,
		empty:               false,
	} {
		got, err := IsArchive(name)
		if err != nil {
			t.Errorf("IsArchive(%s) error = %v", name, err)
		}
		if got != want {
			t.Errorf("IsArchive(%s) = %v, want %v", name, got, want)
		}
	}
	if _, err := IsArchive(filepath.Join(dir, "missing")); err == nil {
		t.Error("IsArchive() of missing file returned no error")
	}
}

func TestWalk(t *testing.T) {
	a, err := Open(makeZip(t, "books/one.txt", "books/pics/a.png", "books/two.xml", "notes.txt", "Books/upper.txt"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"books/", []string{"books/one.txt", "books/pics/a.png", "books/two.xml"}},
		{"books/two.xml", []string{"books/two.xml"}},
		{"", []string{"books/one.txt", "books/pics/a.png", "books/two.xml", "notes.txt", "Books/upper.txt"}},
		{"missing/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			var got []string
			err := a.Walk(tt.prefix, func(f *zip.File) error {
				got = append(got, f.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("stops on error", func(t *testing.T) {
		stop := errors.New("stop")
		visited := 0
		err := a.Walk("books/", func(*zip.File) error {
			visited++
			return stop
		})
		if !errors.Is(err, stop) || visited != 1 {
			t.Errorf("Walk() = %v after %d files", err, visited)
		}
	})
}

func TestWalkUnsafe(t *testing.T) {
	a, err := Open(makeZip(t, "ok.txt", "../evil.txt"))
	if errors.Is(err, zip.ErrInsecurePath) {
		return
	}
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	if err := a.Walk("", func(*zip.File) error { return nil }); err == nil {
		t.Error("Walk() accepted path traversal")
	}
}

func TestFS(t *testing.T) {
	name := makeZip(t, "books/pics/a.png")
	a, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	if a.Path() != name {
		t.Errorf("Path() = %s, want %s", a.Path(), name)
	}
	f, err := fs.Sub(a, "books")
	if err != nil {
		t.Fatal(err)
	}
	r, err := f.Open("pics/a.png")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content of books/pics/a.png" {
		t.Errorf("read %q", data)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("Open() of missing archive returned no error")
	}
}
