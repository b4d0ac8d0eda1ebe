package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	suffixPattern  = regexp.MustCompile(`^[a-z0-9_-]*$`)
	prefixPattern  = regexp.MustCompile(`^[a-zA-Z]*$`)
	initialPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

func validateSuffix(flag, s string) error {
	if !suffixPattern.MatchString(s) {
		return usageError(fmt.Errorf("argument --%s: Suffix: Allowed characters are lowercase letters, numbers, dashes and underscores", flag))
	}
	return nil
}

func validatePrefix(flag, s string) error {
	if !prefixPattern.MatchString(s) {
		return usageError(fmt.Errorf("argument --%s: Prefix: Allowed characters are lowercase and uppercase letters", flag))
	}
	return nil
}

func validateInitial(flag, s string) error {
	if !initialPattern.MatchString(s) {
		return usageError(fmt.Errorf("argument --%s: Initial offset: Must be a three-level integer separated by dots (e.g. 1.0.0)", flag))
	}
	return nil
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError(fmt.Errorf("unrecognized arguments: %s", strings.Join(args, " ")))
	}
	return nil
}
