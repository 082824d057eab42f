package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
	err   error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return f.err
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	if f.err == nil {
		f.loggedIn = true
	}
	return f.err
}
func (f *fakeExec) GoogleLogin(ctx context.Context) error {
	f.calls = append(f.calls, "google")
	f.loggedIn = true
	return f.err
}
func (f *fakeExec) Analyze(ctx context.Context, path string) error {
	f.calls = append(f.calls, "analyze")
	f.args = append(f.args, path)
	return f.err
}
func (f *fakeExec) Plan(ctx context.Context, path string) error {
	f.calls = append(f.calls, "plan")
	f.args = append(f.args, path)
	return f.err
}
func (f *fakeExec) Questions(ctx context.Context, path string) error {
	f.calls = append(f.calls, "questions")
	f.args = append(f.args, path)
	return f.err
}
func (f *fakeExec) Chat(ctx context.Context, text string) error {
	f.calls = append(f.calls, "chat")
	f.args = append(f.args, text)
	return f.err
}
func (f *fakeExec) Show(ctx context.Context) error {
	f.calls = append(f.calls, "show")
	return f.err
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return f.err
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"analyze resume.json",
		"plan plan.json",
		"questions q.json",
		"chat how do I prepare",
		"show",
		"logout",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"login", "analyze", "plan", "questions", "chat", "show", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, want)
		}
	}

	if exec.args[0] != "resume.json" {
		t.Fatalf("analyze arg: got %q", exec.args[0])
	}
	if exec.args[3] != "how do I prepare" {
		t.Fatalf("chat must join its words: got %q", exec.args[3])
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("analyze\nchat\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_FailedLoginAllowsRetry(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{err: errors.New("invalid credentials")}
	input := strings.NewReader("login\nlogin\nexit\n")
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 2 {
		t.Fatalf("expected two login attempts, got %v", exec.calls)
	}
	if exec.loggedIn {
		t.Fatal("failed login must not authenticate")
	}
}
