package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file path a run touches, resolved from the
// configuration. It is the single place output directories are created.
type Paths struct {
	Sedona      string
	Saga        string
	Suppliers   string
	Result      string
	CSVDir      string
	MetricsFile string
	LogFile     string
	TraceFile   string
}

// Paths resolves the configured file locations. Relative paths stay relative
// to the working directory, matching how the shop runs the tool next to its
// exports.
func (c *Config) Paths() *Paths {
	p := &Paths{
		Sedona:      clean(c.Inputs.Sedona),
		Saga:        clean(c.Inputs.Saga),
		Suppliers:   clean(c.Inputs.Suppliers),
		Result:      clean(c.Output.Result),
		CSVDir:      clean(c.Output.CSVDir),
		MetricsFile: clean(c.Metrics.TextfilePath),
		TraceFile:   clean(c.Tracing.FilePath),
	}
	if c.Logging.Output != "console" {
		p.LogFile = clean(c.Logging.FilePath)
	}
	return p
}

func clean(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

// EnsureDirectories creates the parent directories of every output path.
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.CSVDir}
	for _, file := range []string{p.Result, p.MetricsFile, p.LogFile, p.TraceFile} {
		if file != "" {
			directories = append(directories, filepath.Dir(file))
		}
	}

	logger := slog.Default()
	for _, dir := range directories {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
