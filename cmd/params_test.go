package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newFlagCommand(t *testing.T, args ...string) (*cobra.Command, *modelFlags) {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	f := &modelFlags{}
	bindModelFlags(c, f)
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c, f
}

func TestResolveParams_Defaults(t *testing.T) {
	c, f := newFlagCommand(t, "-x", "900, 900", "--camera", "Top")
	p, err := resolveParams(c, f)
	if err != nil {
		t.Fatalf("resolveParams error: %v", err)
	}
	if p.X != "900, 900" || p.Camera != "Top" || p.Radius != 60 {
		t.Fatalf("params = %+v", p)
	}
}

func TestResolveParams_FileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bay.yaml")
	body := "x: \"1200\"\ny: \"1200\"\nz: \"1500, 1500\"\nradius: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, f := newFlagCommand(t, "-f", path, "-z", "2000", "--opacity-x", "0.5")
	p, err := resolveParams(c, f)
	if err != nil {
		t.Fatalf("resolveParams error: %v", err)
	}
	if p.X != "1200" || p.Radius != 30 {
		t.Fatalf("file values lost: %+v", p)
	}
	if p.Z != "2000" || p.Opacity.HorizontalX != 0.5 {
		t.Fatalf("flag overrides not applied: %+v", p)
	}
	if p.Y != "1200" {
		t.Fatalf("unset flag overrode the file: Y = %q", p.Y)
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Fatalf("displayAddr(:8080) = %s", got)
	}
	if got := displayAddr("0.0.0.0:80"); got != "0.0.0.0:80" {
		t.Fatalf("displayAddr = %s", got)
	}
}
