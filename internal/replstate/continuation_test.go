package replstate

import "testing"

func TestNeedsContinuation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"complete let", "let x = 1", false},
		{"trailing arrow", "let square = fn (x) ->", true},
		{"trailing with", "match x with", true},
		{"trailing assign", "let x =", true},
		{"trailing then", "if x then", true},
		{"trailing else", "if x then 1 else", true},
		{"trailing in", "let x = 1 in", true},
		{"trailing pipe arm", "| Some x ->", true},
		{"unclosed paren", "let x = (1 + 2", true},
		{"unclosed bracket", "let xs = [1, 2", true},
		{"unclosed brace", "let r = { a = 1", true},
		{"balanced parens", "let x = (1 + 2)", false},
		{"unterminated string", `let s = "hello`, true},
		{"terminated string", `let s = "hello"`, false},
		{"empty input", "", false},
		{"whitespace only", "   \n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NeedsContinuation(c.in); got != c.want {
				t.Errorf("NeedsContinuation(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
