package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	versionCmd.SetOut(out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	want := "ytorg vdev (commit: , built )\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
