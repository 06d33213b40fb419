// Package envvar provides typed lookups of environment variables which tune the client at runtime.
package envvar

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString returns the trimmed value of the environment variable, the boolean is false if it's unset or empty.
func GetString(varName string) (string, bool) {
	val, ok := os.LookupEnv(varName)
	if !ok {
		return "", false
	}

	val = strings.TrimSpace(val)

	return val, val != ""
}

// GetInt returns the int value of the environment variable; unset or non-integer values return 0, false.
func GetInt(varName string) (int, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetBool returns the boolean value of the environment variable; unset or non-boolean values return false, false.
func GetBool(varName string) (bool, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return false, false
	}

	val, err := strconv.ParseBool(env)
	if err != nil {
		return false, false
	}

	return val, true
}

// GetDuration returns the duration value of the environment variable; unset or unparsable values return 0, false.
//
// NOTE: A bare integer is accepted and treated as a number of seconds.
func GetDuration(varName string) (time.Duration, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	if seconds, err := strconv.Atoi(env); err == nil {
		return time.Duration(seconds) * time.Second, true
	}

	duration, err := time.ParseDuration(env)
	if err != nil {
		return 0, false
	}

	return duration, true
}
