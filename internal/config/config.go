// Package config holds the optimizer's non-circuit runtime parameters —
// everything that shapes how a run behaves rather than what circuit it
// operates on — plus the .env-based defaults layer the CLI loads before
// applying command-line overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// FileType names the recognized input formats. Other means the type
// could not be inferred and must be specified explicitly.
type FileType int

const (
	FileTypeOther FileType = iota
	FileTypeTxt
	FileTypeQasm
)

func FileTypeFromString(s string) (FileType, error) {
	switch strings.ToLower(s) {
	case "txt":
		return FileTypeTxt, nil
	case "qasm":
		return FileTypeQasm, nil
	default:
		return FileTypeOther, &ConfigError{Msg: fmt.Sprintf("unrecognized file type %q, possible values are \"txt\" or \"qasm\"", s)}
	}
}

// ConfigError reports an invalid or self-contradictory run configuration
// — a problem with the settings themselves, distinct from an I/O or
// parse failure encountered while acting on them.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func (f FileType) String() string {
	switch f {
	case FileTypeTxt:
		return "txt"
	case FileTypeQasm:
		return "qasm"
	default:
		return "other"
	}
}

// MaxPreallocOperations caps the buffer the optimizer will eagerly
// preallocate from a user-supplied operation-count hint, independent of
// qubit width — a DoS guard against a hostile --num-operations value on
// a small-width circuit requesting an enormous allocation.
const MaxPreallocOperations = 1 << 31

// RunConfig is every knob that controls how a run behaves, independent
// of the circuit itself.
type RunConfig struct {
	TargetBufferLength     int
	Bypass                 bool
	ShrinkBufferAfterRepeat bool
	FullPartitioning       bool
	BigFile                bool
	NumOperations          *int
	FileType               FileType
}

// Default matches the original's conservative defaults: a 4096-operation
// target buffer, every boolean flag off, and the file type left to be
// inferred.
func Default() RunConfig {
	return RunConfig{
		TargetBufferLength: 4096,
		FileType:           FileTypeOther,
	}
}

// Validate rejects combinations of settings that can't both hold, and
// clamps a target buffer length beyond MaxPreallocOperations down to it.
func (c *RunConfig) Validate() error {
	if c.BigFile && c.FullPartitioning {
		return &ConfigError{Msg: "cannot use both full partitioning and big-file mode: full partitioning requires the whole circuit in memory"}
	}
	if c.TargetBufferLength > MaxPreallocOperations {
		c.TargetBufferLength = MaxPreallocOperations
	}
	if c.TargetBufferLength < 1 {
		c.TargetBufferLength = 1
	}
	return nil
}

// EnvFileOverrideVar names the environment variable that, when set,
// overrides the default ".env" path LoadEnv reads from.
const EnvFileOverrideVar = "QARROT_ENV_FILE"

// LoadEnv loads .env (if present — a missing file is not an error) so
// QARROT_LOG_LEVEL and any future environment-driven default can be set
// without exporting it into the shell first. QARROT_ENV_FILE, if set,
// names a different path to load instead.
func LoadEnv() error {
	path := ".env"
	if override := os.Getenv(EnvFileOverrideVar); override != "" {
		path = override
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}
