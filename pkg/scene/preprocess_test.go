package scene

import (
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", `(attrib :point "P")`, `(attrib "__kw_point" "P")`},
		{"keyword with hyphen", `:part-a`, `"__kw_part-a"`},
		{"keyword inside string kept", `"a :b c"`, `"a :b c"`},
		{"line comment", "(points 1) ; four\n", "(points 1) // four\n"},
		{"double semicolon", ";; header", "// header"},
		{"kebab identifier", `(def my-quad 1)`, `(def my_quad 1)`},
		{"minus operator kept", `(- 3 1)`, `(- 3 1)`},
		{"negative number kept", `[-1 -0.5]`, `[-1 -0.5]`},
		{"assignment kept", `(x := 1)`, `(x := 1)`},
		{"escaped quote", `"a\"b :c"`, `"a\"b :c"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpInt{Val: 1},
		&zygo.SexpStr{S: kwPrefix + "size"},
		&zygo.SexpInt{Val: 3},
		&zygo.SexpStr{S: "plain"},
		&zygo.SexpStr{S: kwPrefix + "flag"},
	}
	pa := parseArgs(args)

	if len(pa.positional) != 2 {
		t.Fatalf("positional = %d, want 2", len(pa.positional))
	}
	if v, ok := pa.kw["size"].(*zygo.SexpInt); !ok || v.Val != 3 {
		t.Errorf("kw[size] = %v, want 3", pa.kw["size"])
	}
	if pa.kw["flag"] != zygo.SexpNull {
		t.Errorf("kw[flag] = %v, want SexpNull", pa.kw["flag"])
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg  string
		line int
		want string
	}{
		{"Error on line 3: unexpected end of input", 3, "unexpected end of input"},
		{"line 7: bad token", 7, "bad token"},
		{"something else", 0, "something else"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := parseZygomysError(errString(tt.msg))
			if got.Line != tt.line || got.Message != tt.want {
				t.Errorf("parseZygomysError(%q) = %+v, want line %d %q", tt.msg, got, tt.line, tt.want)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
