package pyfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromBytes_Lines(t *testing.T) {
	doc := FromBytes("x.py", []byte("a = 1\nb = 2\n"))

	if doc.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", doc.LineCount())
	}
	if doc.Line(1) != "a = 1" {
		t.Errorf("Line(1) = %q, want %q", doc.Line(1), "a = 1")
	}
	if doc.Line(3) != "" {
		t.Errorf("Line(3) = %q, want empty", doc.Line(3))
	}
}

func TestFromBytes_NoTrailingNewline(t *testing.T) {
	doc := FromBytes("x.py", []byte("a = 1\nb = 2"))
	if doc.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", doc.LineCount())
	}
}

func TestFromBytes_Empty(t *testing.T) {
	doc := FromBytes("x.py", nil)
	if doc.LineCount() != 0 {
		t.Errorf("LineCount() = %d, want 0", doc.LineCount())
	}
}

func TestFromBytes_InvalidUTF8(t *testing.T) {
	doc := FromBytes("x.py", []byte{0x61, 0xff, 0xfe, 0x62})
	for _, r := range doc.Content {
		if r == 0xff || r == 0xfe {
			t.Fatalf("invalid bytes survived decoding: %q", doc.Content)
		}
	}
	if doc.Content[0] != 'a' {
		t.Errorf("valid prefix lost: %q", doc.Content)
	}
}

func TestFromBytes_DigestDeterministic(t *testing.T) {
	a := FromBytes("a.py", []byte("x = 1\n"))
	b := FromBytes("b.py", []byte("x = 1\n"))
	c := FromBytes("c.py", []byte("x = 2\n"))

	if a.Digest != b.Digest {
		t.Errorf("identical bytes produced different digests: %s vs %s", a.Digest, b.Digest)
	}
	if a.Digest == c.Digest {
		t.Error("different bytes produced the same digest")
	}
	if len(a.Digest) != 16 {
		t.Errorf("digest length = %d, want 16 hex chars", len(a.Digest))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
	if doc.Content != "x = 1\n" {
		t.Errorf("Content = %q", doc.Content)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.py"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
