package check

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/backmassage/sceneprep/internal/command"
	"github.com/backmassage/sceneprep/internal/config"
)

type nopLogger struct{ errors int }

func (l *nopLogger) Info(string, ...interface{})    {}
func (l *nopLogger) Success(string, ...interface{}) {}
func (l *nopLogger) Warn(string, ...interface{})    {}
func (l *nopLogger) Error(string, ...interface{})   { l.errors++ }

// stubRunner exits with codes[name], 0 when absent.
type stubRunner struct {
	codes map[string]int
	calls []command.Invocation
}

func (s *stubRunner) Run(_ context.Context, inv command.Invocation) command.Result {
	s.calls = append(s.calls, inv)
	if code := s.codes[inv.Name]; code != 0 {
		return command.Result{ExitCode: code, Err: fmt.Errorf("exit %d", code)}
	}
	return command.Result{}
}

func stubLookPath(t *testing.T, found ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(file string) (string, error) {
		for _, f := range found {
			if f == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name   string
		found  []string
		codes  map[string]int
		resize bool
		want   bool
	}{
		{"both present", []string{"colmap", "magick"}, nil, true, true},
		{"colmap missing", []string{"magick"}, nil, false, false},
		{"magick missing without resize", []string{"colmap"}, nil, false, true},
		{"magick missing with resize", []string{"colmap"}, nil, true, false},
		{"colmap broken", []string{"colmap", "magick"}, map[string]int{"/usr/bin/colmap": 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubLookPath(t, tt.found...)
			cfg := config.DefaultConfig()
			cfg.CheckOnly = true
			cfg.Resize = tt.resize
			r := &stubRunner{codes: tt.codes}

			if got := RunCheck(context.Background(), &cfg, &nopLogger{}, r); got != tt.want {
				t.Errorf("RunCheck() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunCheck_UsesOverrides(t *testing.T) {
	stubLookPath(t, "/opt/colmap/bin/colmap", "magick")
	cfg := config.DefaultConfig()
	cfg.ColmapExecutable = "/opt/colmap/bin/colmap"
	r := &stubRunner{}

	if !RunCheck(context.Background(), &cfg, &nopLogger{}, r) {
		t.Fatal("RunCheck() = false")
	}
	if len(r.calls) != 2 || r.calls[0].Args[0] != "help" || r.calls[1].Args[0] != "-version" {
		t.Errorf("calls = %+v", r.calls)
	}
}
