package shell

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.elcc.sh/pkg/must"
	"src.elcc.sh/pkg/prog"
	"src.elcc.sh/pkg/rc"
	"src.elcc.sh/pkg/testutil"
)

func TestRCPath(t *testing.T) {
	testutil.Setenv(t, "ELCC_CONFIG_HOME", "/conf")
	if path, err := RCPath(); path != "/conf/rc.yaml" || err != nil {
		t.Errorf("RCPath -> (%q, %v), want (/conf/rc.yaml, nil)", path, err)
	}

	testutil.Unsetenv(t, "ELCC_CONFIG_HOME")
	testutil.Setenv(t, "XDG_CONFIG_HOME", "/xdg")
	if path, err := RCPath(); path != "/xdg/elcc/rc.yaml" || err != nil {
		t.Errorf("RCPath -> (%q, %v), want (/xdg/elcc/rc.yaml, nil)", path, err)
	}
}

func TestLoadRC(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.Setenv(t, "ELCC_CONFIG_HOME", dir)

	// A missing default file is fine.
	cfg, err := loadRC(&prog.Flags{})
	if err != nil {
		t.Fatalf("loadRC without default file -> %v", err)
	}
	if diff := cmp.Diff(&rc.Config{}, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	must.WriteFile(filepath.Join(dir, "rc.yaml"), "prompt: 'default> '\n")
	cfg = must.OK1(loadRC(&prog.Flags{}))
	if cfg.Prompt != "default> " {
		t.Errorf("prompt from default file = %q", cfg.Prompt)
	}

	cfg = must.OK1(loadRC(&prog.Flags{NoRC: true}))
	if cfg.Prompt != "" {
		t.Errorf("prompt with -norc = %q, want empty", cfg.Prompt)
	}

	other := filepath.Join(dir, "other.yaml")
	must.WriteFile(other, "prompt: 'other> '\n")
	cfg = must.OK1(loadRC(&prog.Flags{RC: other}))
	if cfg.Prompt != "other> " {
		t.Errorf("prompt from -rc file = %q", cfg.Prompt)
	}

	// A missing file named by -rc is an error.
	_, err = loadRC(&prog.Flags{RC: filepath.Join(dir, "missing.yaml")})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("loadRC with missing -rc file -> %v, want fs.ErrNotExist", err)
	}
}

func TestProgram_RejectsArguments(t *testing.T) {
	err := Program{}.Run([3]*os.File{}, &prog.Flags{}, []string{"foo"})
	if err == nil || err.Error() != "arguments are not supported" {
		t.Errorf("Run -> %v", err)
	}
}
