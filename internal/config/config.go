// Package config loads the environment-variable-shaped configuration the
// mining process needs: identity, worker count, coordinator address,
// protocol version, epoch seed, and solution threshold. An optional
// .env file is loaded first, following the twelve-factor convention this
// corpus uses godotenv for; real process environment variables always
// take precedence over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Error is a typed configuration failure: which variable, and why.
type Error struct {
	Var string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Var, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const (
	envIdentity          = "QINER_IDENTITY"
	envThreadCount       = "QINER_THREAD_COUNT"
	envServerHost        = "QINER_SERVER_HOST"
	envServerPort        = "QINER_SERVER_PORT"
	envVersion           = "QINER_VERSION"
	envSeed              = "QINER_SEED"
	envSolutionThreshold = "QINER_SOLUTION_THRESHOLD"

	defaultThreadCount = 4
)

// Config is the parsed, validated process configuration.
type Config struct {
	Identity          string
	ThreadCount       int
	ServerHost        string
	ServerPort        int
	VersionMajor      byte
	VersionMinor      byte
	VersionPatch      byte
	Seed              [32]byte
	SolutionThreshold int
}

// Load reads the configuration from envFile (if it exists) and the process
// environment, process environment taking precedence, and validates it.
// An empty envFile skips the file-loading step entirely.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, &Error{Var: envFile, Err: err}
		}
	}

	var c Config
	var err error

	if c.Identity, err = requireString(envIdentity); err != nil {
		return nil, err
	}

	c.ThreadCount = defaultThreadCount
	if v, ok := os.LookupEnv(envThreadCount); ok {
		if c.ThreadCount, err = parsePositiveInt(envThreadCount, v); err != nil {
			return nil, err
		}
	}

	if c.ServerHost, err = requireString(envServerHost); err != nil {
		return nil, err
	}

	portStr, err := requireString(envServerPort)
	if err != nil {
		return nil, err
	}
	if c.ServerPort, err = parsePositiveInt(envServerPort, portStr); err != nil {
		return nil, err
	}

	versionStr, err := requireString(envVersion)
	if err != nil {
		return nil, err
	}
	if c.VersionMajor, c.VersionMinor, c.VersionPatch, err = parseVersion(versionStr); err != nil {
		return nil, err
	}

	seedStr, err := requireString(envSeed)
	if err != nil {
		return nil, err
	}
	if c.Seed, err = parseSeed(seedStr); err != nil {
		return nil, err
	}

	thresholdStr, err := requireString(envSolutionThreshold)
	if err != nil {
		return nil, err
	}
	threshold, convErr := strconv.Atoi(strings.TrimSpace(thresholdStr))
	if convErr != nil || threshold < 0 {
		return nil, &Error{Var: envSolutionThreshold, Err: fmt.Errorf("want an unsigned integer, got %q", thresholdStr)}
	}
	c.SolutionThreshold = threshold

	return &c, nil
}

func requireString(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", &Error{Var: name, Err: fmt.Errorf("not set")}
	}
	return v, nil
}

func parsePositiveInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &Error{Var: name, Err: err}
	}
	if n <= 0 {
		return 0, &Error{Var: name, Err: fmt.Errorf("must be positive, got %d", n)}
	}
	return n, nil
}

func parseVersion(v string) (major, minor, patch byte, err error) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return 0, 0, 0, &Error{Var: envVersion, Err: fmt.Errorf("want MAJOR.MINOR.PATCH, got %q", v)}
	}
	vals := make([]byte, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return 0, 0, 0, &Error{Var: envVersion, Err: fmt.Errorf("invalid version component %q", p)}
		}
		vals[i] = byte(n)
	}
	return vals[0], vals[1], vals[2], nil
}

// parseSeed parses 32 comma-separated unsigned bytes.
func parseSeed(v string) ([32]byte, error) {
	var seed [32]byte
	parts := strings.Split(v, ",")
	if len(parts) != len(seed) {
		return seed, &Error{Var: envSeed, Err: fmt.Errorf("want %d comma-separated bytes, got %d", len(seed), len(parts))}
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return seed, &Error{Var: envSeed, Err: fmt.Errorf("invalid seed byte %q", p)}
		}
		seed[i] = byte(n)
	}
	return seed, nil
}
