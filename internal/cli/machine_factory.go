package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ndtm"
)

// ProgramExt is the file extension of program files.
const ProgramExt = ".tm"

// createMachine loads a machine with standard CLI conventions.
func createMachine(opts RunOptions, logger *slog.Logger) (*ndtm.Machine, error) {
	machineOpts := []ndtm.Option{
		ndtm.WithLogger(logger),
		ndtm.WithDialect(opts.Dialect),
	}
	if opts.Debug {
		machineOpts = append(machineOpts, ndtm.WithLifecycleHooks(createDebugHooks(logger)))
	}

	m, err := ndtm.Load(opts.Path, machineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error loading program: %w", err)
	}
	return m, nil
}

// LoadPrograms reads every *.tm file in dir, keyed by file name without
// the extension. Subdirectories are not searched.
func LoadPrograms(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read programs directory: %w", err)
	}

	programs := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ProgramExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		programs[strings.TrimSuffix(e.Name(), ProgramExt)] = string(data)
	}
	return programs, nil
}
