// Package gitsemver derives and advances semantic-version tags in a git
// repository.
//
// It provides functionalities for:
//   - Scanning tag names for a "major.minor.patch" core and selecting the
//     highest one (Resolve). Any text around the core is allowed, so "v1.2.3",
//     "ver1.2.3" and "release-1.2.3-rc" all count.
//   - Computing the next major, minor and patch candidates.
//   - Keeping a small configuration (prefix, initial offset, suffix) in a
//     ".semver.config" file at the repository root, overridable by the
//     regular git config keys semver.prefix, semver.initial and
//     semver.suffix (ConfigStore).
//   - Creating the next annotated tag, or printing the git command that
//     would create it (Engine).
//
// Repository access goes through the Gateway interface. GitCLI runs the git
// binary; GoGit works in-process with go-git.
//
// Usage Example:
//
//	import (
//	    "context"
//	    "log"
//
//	    gitsemver "github.com/bcomnes/gitsemver/pkg"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    gw, err := gitsemver.NewGitCLI(".")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    engine, err := gitsemver.New(ctx, gw)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    tag, err := engine.Bump(ctx, gitsemver.Patch, "", nil)
//	    if err != nil {
//	        log.Fatalf("bump failed: %v", err)
//	    }
//	    log.Println("tagged", tag)
//	}
package gitsemver
