// Package main implements the gitsemver CLI tool.
//
// The gitsemver tool reads the tags of the git repository it runs in, finds the
// highest "major.minor.patch" version among them and creates the next version as
// an annotated tag. Tags may carry any text around the version core, so "v1.2.3",
// "ver1.2.3" and "release-1.2.3-rc1" are all recognized. Tags without a three-part
// version core (e.g. "version3.11-freetext") are ignored.
//
// Command Usage:
//
//	gitsemver [flags]
//	gitsemver bump (--major | --minor | --patch) [-m TEXT] [--suffix SUFFIX] [--run | --no-run]
//	gitsemver config [--prefix PREFIX] [--suffix SUFFIX] [--initial X.Y.Z]
//
// Global flags:
//
//	-v, --verbose: Enable debug logging on stderr.
//	-C, --workdir: Run as if started in the given directory.
//	--backend:     "git" (default) runs the git binary; "go-git" works in-process.
//	--version:     Display the version of the gitsemver CLI tool and exit.
//
// Every global flag can also be set through the environment with a GITSEMVER_
// prefix, e.g. GITSEMVER_BACKEND=go-git.
//
// Configuration:
//
// The config subcommand writes the keys semver.prefix, semver.initial and
// semver.suffix to a ".semver.config" file (git config format) at the repository
// root. The same keys in the regular git configuration override the file. The
// initial offset (default 0.0.0) is the current version while the repository has
// no version tags.
//
// Examples:
//
//	# Print the current tag
//	gitsemver
//
//	# Bump the patch version (e.g. ver1.2.3 → ver1.2.4)
//	gitsemver bump --patch
//
//	# Bump the minor version with an extra annotation line
//	gitsemver bump --minor -m "Adds the export command"
//
//	# Bump the major version as a pending release (e.g. 1.2.3 → 2.0.0-pending)
//	gitsemver bump --major --suffix pending
//
//	# Show the git command that would be run
//	gitsemver bump --patch --no-run
//
//	# Start versioning at 1.0.0 with a "v" prefix
//	gitsemver config --prefix v --initial 1.0.0
//
// Exit status is 0 on success, 2 for invalid arguments and 1 when a repository
// operation fails.
//
// For the library API, see the documentation in the "pkg" package.
package main
