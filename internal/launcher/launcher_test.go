package launcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMergeEnviron(t *testing.T) {
	base := []string{"PATH=/bin", "HOME=/home/u", "STALE=old", "MALFORMED"}
	overrides := map[string]string{
		"STALE":  "",    // remove
		"HOME":   "/tmp", // replace
		"ZZ_NEW": "v",    // append
		"AA_NEW": "w",    // append
	}

	merged := MergeEnviron(base, overrides)

	got := map[string]string{}
	var order []string
	for _, entry := range merged {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		got[name] = value
		order = append(order, name)
	}

	if _, present := got["STALE"]; present {
		t.Error("empty override value should remove the variable")
	}
	if got["HOME"] != "/tmp" {
		t.Errorf("HOME = %q, want /tmp", got["HOME"])
	}
	if got["PATH"] != "/bin" {
		t.Errorf("PATH = %q, want passthrough", got["PATH"])
	}
	if got["ZZ_NEW"] != "v" || got["AA_NEW"] != "w" {
		t.Errorf("added vars = %v", got)
	}

	// Malformed entries pass through verbatim.
	found := false
	for _, entry := range merged {
		if entry == "MALFORMED" {
			found = true
		}
	}
	if !found {
		t.Error("malformed entry dropped")
	}

	// Added keys land at the end in sorted order.
	if len(order) < 2 || order[len(order)-2] != "AA_NEW" || order[len(order)-1] != "ZZ_NEW" {
		t.Errorf("appended order = %v", order)
	}
}

func TestMergeEnvironNoOverrides(t *testing.T) {
	base := []string{"A=1", "B=2"}
	merged := MergeEnviron(base, nil)
	if len(merged) != 2 || merged[0] != "A=1" || merged[1] != "B=2" {
		t.Errorf("merged = %v", merged)
	}
}

func TestRunPassesEnvironmentAndExitCode(t *testing.T) {
	var out bytes.Buffer
	l := &Launcher{
		Command: "sh",
		Environ: []string{"PATH=/bin:/usr/bin"},
		Stdout:  &out,
	}

	code, err := l.Run([]string{"-c", "printf '%s' \"$PROBE_VAR\""}, map[string]string{"PROBE_VAR": "hello"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d", code)
	}
	if out.String() != "hello" {
		t.Errorf("child saw PROBE_VAR = %q", out.String())
	}
}

func TestRunReturnsChildExitCode(t *testing.T) {
	l := &Launcher{Command: "sh", Environ: []string{"PATH=/bin:/usr/bin"}}

	code, err := l.Run([]string{"-c", "exit 3"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	l := &Launcher{Command: "definitely-not-a-real-command-xyz"}

	code, err := l.Run(nil, nil)
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("err = %v, want ErrCommandNotFound", err)
	}
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
