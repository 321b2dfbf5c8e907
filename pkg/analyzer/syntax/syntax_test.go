package syntax

import (
	"testing"

	"github.com/abdulrahman-code/pyvet/pkg/pyfile"
)

func TestAnalyze_Valid(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Analyze(pyfile.FromBytes("ok.py", []byte("x = 1\n\ndef f():\n    return x\n")))
	if !res.OK {
		t.Fatalf("valid source rejected: %+v", res.Error)
	}
	if res.Error != nil {
		t.Error("Error should be nil on success")
	}
}

func TestAnalyze_Invalid(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Analyze(pyfile.FromBytes("bad.py", []byte("def f(:\n    pass\n")))
	if res.OK {
		t.Fatal("invalid source accepted")
	}
	if res.Error == nil {
		t.Fatal("Error must be populated on failure")
	}
	if res.Error.Line == 0 {
		t.Error("error line should be 1-based")
	}
	if res.Error.Message == "" {
		t.Error("error message should not be empty")
	}
}

func TestAnalyze_OffendingLineText(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Analyze(pyfile.FromBytes("bad.py", []byte("x = 1\ndef broken(:\n    pass\n")))
	if res.OK {
		t.Fatal("invalid source accepted")
	}
	if res.Error.LineText == "" {
		t.Error("offending line text should be rendered")
	}
}

func TestAnalyze_Empty(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Analyze(pyfile.FromBytes("empty.py", nil))
	if !res.OK {
		t.Errorf("empty file should parse: %+v", res.Error)
	}
}
