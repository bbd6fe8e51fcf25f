// Package rc reads the YAML configuration file of the line editor.
//
// A configuration file looks like this:
//
//	prompt: "% "
//	key-seq-timeout: 150ms
//	history:
//	  file: ~/.local/state/elcc/history.db
//	  size: 1000
//	bindings:
//	  ^X: ed-redisplay
//	  Alt-h: ed-prev-char
//	editors:
//	  calc:
//	    prompt: "calc> "
//	    bindings:
//	      ^I: ed-complete
//
// Settings under editors apply only to the editor with the given name, after
// the global settings.
package rc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"src.elcc.sh/pkg/cli"
	"src.elcc.sh/pkg/cli/histutil"
	"src.elcc.sh/pkg/errutil"
	"src.elcc.sh/pkg/logutil"
	"src.elcc.sh/pkg/store"
)

var logger = logutil.GetLogger("[rc] ")

// Config is the content of a configuration file.
type Config struct {
	Prompt        string                  `yaml:"prompt"`
	KeySeqTimeout time.Duration           `yaml:"key-seq-timeout"`
	History       History                 `yaml:"history"`
	Bindings      map[string]string       `yaml:"bindings"`
	Editors       map[string]EditorConfig `yaml:"editors"`
}

// History configures the history store.
type History struct {
	// Path of the history database. When empty, history is kept in memory.
	File string `yaml:"file"`
	// Number of entries to keep. 0 means no limit.
	Size int `yaml:"size"`
}

// EditorConfig holds the settings that apply to one editor.
type EditorConfig struct {
	Prompt   string            `yaml:"prompt"`
	Bindings map[string]string `yaml:"bindings"`
}

// Load reads a Config. Unknown fields are errors. An empty input gives an
// empty Config.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	err := dec.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if c.KeySeqTimeout < 0 {
		return nil, fmt.Errorf("key-seq-timeout must not be negative, got %v", c.KeySeqTimeout)
	}
	if c.History.Size < 0 {
		return nil, fmt.Errorf("history.size must not be negative, got %d", c.History.Size)
	}
	return &c, nil
}

// LoadFile reads a Config from a file. The error wraps fs.ErrNotExist if the
// file doesn't exist.
func LoadFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger.Println("loaded config from", name)
	return c, nil
}

// Spec returns an EditorSpec with the settings of c, using tty as the
// terminal.
func (c *Config) Spec(tty cli.TTY, hist histutil.Store) cli.EditorSpec {
	return cli.EditorSpec{TTY: tty, Store: hist, KeySeqTimeout: c.KeySeqTimeout}
}

// OpenHistory opens the history store configured in c. The returned function
// releases the store.
func (c *Config) OpenHistory() (histutil.Store, func() error, error) {
	if c.History.File == "" {
		return histutil.NewMemStoreWithLimit(c.History.Size), func() error { return nil }, nil
	}
	name := expandHome(c.History.File)
	if err := os.MkdirAll(filepath.Dir(name), 0700); err != nil {
		return nil, nil, err
	}
	db, err := store.NewStore(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	if c.History.Size > 0 {
		if _, err := db.TrimCmds(c.History.Size); err != nil {
			logger.Println("failed to trim history:", err)
		}
	}
	return histutil.NewDBStore(db), db.Close, nil
}

// Apply applies the prompt and the bindings to ed, first the global ones and
// then the ones in the section named after ed. All bindings are tried; the
// errors of the failed ones are combined.
func (c *Config) Apply(ed *cli.Editor) error {
	if c.Prompt != "" {
		ed.SetPrompt(c.Prompt)
	}
	errs := []error{bindAll(ed, c.Bindings)}
	if section, ok := c.Editors[ed.Name()]; ok {
		if section.Prompt != "" {
			ed.SetPrompt(section.Prompt)
		}
		errs = append(errs, bindAll(ed, section.Bindings))
	}
	return errutil.Multi(errs...)
}

func bindAll(ed *cli.Editor, bindings map[string]string) error {
	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := ed.Bind(key, bindings[key]); err != nil {
			errs = append(errs, fmt.Errorf("bind %s: %w", key, err))
		}
	}
	return errutil.Multi(errs...)
}

func expandHome(name string) string {
	if name != "~" && !strings.HasPrefix(name, "~/") {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Println("can't expand ~:", err)
		return name
	}
	return filepath.Join(home, name[1:])
}
