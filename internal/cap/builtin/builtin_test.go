package builtin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/fserr"
	"github.com/marcelocantos/fsh/internal/session"
)

func newEnv(t *testing.T) (*cap.Env, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := session.New(afero.NewOsFs(), dir)
	if err != nil {
		t.Fatal(err)
	}
	return cap.NewEnv(s), dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, c cap.Capability, env *cap.Env, args []string, prior cap.Text) (cap.Text, error) {
	t.Helper()
	return c.Run(context.Background(), env, args, prior)
}

func TestPwd(t *testing.T) {
	env, dir := newEnv(t)
	out, err := run(t, &Pwd{}, env, nil, cap.None)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Set || out.Value != dir {
		t.Errorf("pwd = %+v, want %q", out, dir)
	}
}

func TestCd(t *testing.T) {
	env, dir := newEnv(t)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, &Cd{}, env, []string{"sub"}, cap.None)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != sub || env.Session.Pwd() != sub {
		t.Errorf("cd sub: output %q, pwd %q", out.Value, env.Session.Pwd())
	}

	// No argument and no prior output moves up.
	if _, err := run(t, &Cd{}, env, nil, cap.None); err != nil {
		t.Fatal(err)
	}
	if env.Session.Pwd() != dir {
		t.Errorf("cd: pwd = %q, want %q", env.Session.Pwd(), dir)
	}

	// Prior output names the target.
	if _, err := run(t, &Cd{}, env, nil, cap.Some(sub+"\n")); err != nil {
		t.Fatal(err)
	}
	if env.Session.Pwd() != sub {
		t.Errorf("cd from prior: pwd = %q, want %q", env.Session.Pwd(), sub)
	}

	if _, err := run(t, &Cd{}, env, []string{"missing"}, cap.None); !errors.Is(err, fserr.NotADirectory) {
		t.Errorf("cd missing: err = %v, want NotADirectory", err)
	}
	if env.Session.Pwd() != sub {
		t.Errorf("failed cd changed pwd to %q", env.Session.Pwd())
	}
}

func TestLs(t *testing.T) {
	env, dir := newEnv(t)
	for _, name := range []string{"b", "a", ".hidden", "c"} {
		writeFile(t, filepath.Join(dir, name), "")
	}

	tests := []struct {
		name  string
		args  []string
		prior cap.Text
		want  string
	}{
		{"plain", nil, cap.None, "a\nb\nc"},
		{"all", []string{"-a"}, cap.None, ".hidden\na\nb\nc"},
		{"reverse", []string{"-r"}, cap.None, "c\nb\na"},
		{"combined", []string{"-ar"}, cap.None, "c\nb\na\n.hidden"},
		{"flag after dir", []string{".", "-r"}, cap.None, "c\nb\na"},
		{"prior dir", nil, cap.Some(dir), "a\nb\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, &Ls{}, env, tt.args, tt.prior)
			if err != nil {
				t.Fatal(err)
			}
			if out.Value != tt.want {
				t.Errorf("ls %v = %q, want %q", tt.args, out.Value, tt.want)
			}
		})
	}
}

func TestLsValidate(t *testing.T) {
	ls := &Ls{}
	if err := ls.Validate([]string{"-x"}, false); err == nil {
		t.Error("expected error for unknown flag")
	}
	if err := ls.Validate([]string{"a", "b"}, false); err == nil {
		t.Error("expected error for two directories")
	}
	if err := ls.Validate([]string{"-a", "dir", "-r"}, false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCat(t *testing.T) {
	env, dir := newEnv(t)
	writeFile(t, filepath.Join(dir, "notes.txt"), "hello\nworld\n\n")
	writeFile(t, filepath.Join(dir, "more.txt"), "!")

	out, err := run(t, &Cat{}, env, []string{"notes.txt"}, cap.None)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != "hello\nworld" {
		t.Errorf("cat = %q", out.Value)
	}

	out, err = run(t, &Cat{}, env, nil, cap.Some("notes.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != "hello\nworld" {
		t.Errorf("cat from prior = %q", out.Value)
	}

	if err := (&Cat{}).Validate(nil, false); err == nil || err.Error() != "No file specified for cat command." {
		t.Errorf("cat with no input: err = %v", err)
	}

	out, err = run(t, &Cat{}, env, []string{"more.txt", "notes.txt"}, cap.None)
	if err != nil {
		t.Fatal(err)
	}
	if out.Set {
		t.Errorf("cat SRC DST produced output %q", out.Value)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "notes.txt"))
	if string(data) != "hello\nworld\n\n!" {
		t.Errorf("appended content = %q", data)
	}

	if _, err := run(t, &Cat{}, env, []string{"missing"}, cap.None); !errors.Is(err, fserr.NotFound) {
		t.Errorf("cat missing: err = %v, want NotFound", err)
	}
}

func TestSort(t *testing.T) {
	env, dir := newEnv(t)
	writeFile(t, filepath.Join(dir, "pipe.txt"), "banana\napple\n")

	out, err := run(t, &Sort{}, env, nil, cap.Some("pear\nApple\nbanana"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != "Apple\nbanana\npear" {
		t.Errorf("sort prior = %q", out.Value)
	}

	out, err = run(t, &Sort{}, env, []string{"pipe.txt"}, cap.None)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != "apple\nbanana" {
		t.Errorf("sort file = %q", out.Value)
	}

	if _, err := run(t, &Sort{}, env, nil, cap.None); err == nil || err.Error() != "No input provided for sort command." {
		t.Errorf("sort with no input: err = %v", err)
	}
}

func TestSortLinesStable(t *testing.T) {
	if got := SortLines("b\nB\na\nA"); got != "a\nA\nb\nB" {
		t.Errorf("SortLines = %q", got)
	}
}

func TestMkdirTouchRm(t *testing.T) {
	env, dir := newEnv(t)

	if _, err := run(t, &Mkdir{}, env, []string{"x/y", "z"}, cap.None); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"x/y", "z"} {
		if fi, err := os.Stat(filepath.Join(dir, p)); err != nil || !fi.IsDir() {
			t.Errorf("%s not created", p)
		}
	}

	if _, err := run(t, &Touch{}, env, []string{"z/f"}, cap.None); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "z/f")); err != nil {
		t.Errorf("touch did not create file: %v", err)
	}
	if _, err := run(t, &Touch{}, env, []string{"nope/f"}, cap.None); !errors.Is(err, fserr.NotFound) {
		t.Errorf("touch with missing parent: err = %v, want NotFound", err)
	}

	if _, err := run(t, &Rm{}, env, nil, cap.Some("z/f")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "z/f")); !os.IsNotExist(err) {
		t.Errorf("rm did not remove file")
	}
	if _, err := run(t, &Rm{}, env, []string{"z"}, cap.None); !errors.Is(err, fserr.IsADirectory) {
		t.Errorf("rm dir: err = %v, want IsADirectory", err)
	}

	if _, err := run(t, &Rmdir{}, env, []string{"x"}, cap.None); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "x")); !os.IsNotExist(err) {
		t.Errorf("rmdir did not remove tree")
	}
	if _, err := run(t, &Rmdir{}, env, []string{"x"}, cap.None); err == nil {
		t.Error("rmdir of missing directory succeeded")
	}
}

func TestMv(t *testing.T) {
	env, dir := newEnv(t)
	writeFile(t, filepath.Join(dir, "a"), "A")
	if err := os.Mkdir(filepath.Join(dir, "d"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, &Mv{}, env, []string{"a", "b"}, cap.None); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, &Mv{}, env, []string{"b"}, cap.Some("d")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "d", "b")); err != nil {
		t.Errorf("mv into prior directory: %v", err)
	}

	if err := (&Mv{}).Validate([]string{"only"}, false); err == nil {
		t.Error("mv with one operand and no prior output should fail")
	}

	writeFile(t, filepath.Join(dir, "c"), "C")
	if _, err := run(t, &Mv{}, env, []string{"c"}, cap.Some(" \n")); !errors.Is(err, errNoMvDestination) {
		t.Errorf("mv to blank prior = %v, want missing destination", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "c")); err != nil {
		t.Errorf("c moved: %v", err)
	}
	if _, err := run(t, &Mv{}, env, []string{"c"}, cap.Some("d\n")); err != nil {
		t.Fatalf("mv to prior with trailing newline: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "d", "c")); err != nil {
		t.Errorf("mv into trimmed prior directory: %v", err)
	}
}

func TestBlankPriorSuppliesNoOperand(t *testing.T) {
	env, _ := newEnv(t)
	for _, c := range []cap.Capability{&Mkdir{}, &Touch{}, &Rm{}, &Rmdir{}} {
		if _, err := run(t, c, env, nil, cap.Some("")); err == nil || err.Error() != c.Name()+": missing operand" {
			t.Errorf("%s with blank prior = %v", c.Name(), err)
		}
	}
}

func TestRegisterAll(t *testing.T) {
	reg := cap.NewRegistry()
	RegisterAll(reg)

	tiers := map[string]cap.Tier{
		"pwd": cap.TierRead, "cd": cap.TierRead, "ls": cap.TierRead,
		"cat": cap.TierRead, "sort": cap.TierRead,
		"mkdir": cap.TierWrite, "touch": cap.TierWrite, "mv": cap.TierWrite,
		"rm": cap.TierDangerous, "rmdir": cap.TierDangerous,
	}
	if got := len(reg.All()); got != len(tiers) {
		t.Errorf("registered %d verbs, want %d", got, len(tiers))
	}
	for name, tier := range tiers {
		c, err := reg.Lookup(name)
		if err != nil {
			t.Errorf("%s not registered: %v", name, err)
			continue
		}
		if c.Tier() != tier {
			t.Errorf("%s tier = %v, want %v", name, c.Tier(), tier)
		}
	}
}
