package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"src.elcc.sh/pkg/prog"
	"src.elcc.sh/pkg/rc"
)

// Program runs an interactive session with the demo commands.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := loadRC(f)
	if err != nil {
		return err
	}
	if f.DB != "" {
		cfg.History.File = f.DB
	}
	return Run(fds[0], fds[1], cfg, Options{Name: f.Name, Tick: f.Tick})
}

// Loads the configuration file named by -rc, or the default one. The default
// file may be missing.
func loadRC(f *prog.Flags) (*rc.Config, error) {
	if f.NoRC {
		return &rc.Config{}, nil
	}
	if f.RC != "" {
		return rc.LoadFile(f.RC)
	}
	path, err := RCPath()
	if err != nil {
		logger.Println("no default configuration file:", err)
		return &rc.Config{}, nil
	}
	cfg, err := rc.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &rc.Config{}, nil
	}
	return cfg, err
}

// RCPath returns the path of the default configuration file.
func RCPath() (string, error) {
	if dir := os.Getenv("ELCC_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rc.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("find configuration directory: %w", err)
	}
	return filepath.Join(dir, "elcc", "rc.yaml"), nil
}
