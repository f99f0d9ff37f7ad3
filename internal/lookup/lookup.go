// Package lookup implements the single "lookup" hook registered as a global
// function in every per-test-case template environment. It exists to
// preserve parity with the Ansible `lookup('env', ...)` idiom that some
// templates in the corpus use.
package lookup

import (
	"os"

	"github.com/stackabletech/beku/internal/errs"
)

const envDomain = "env"

// Env reads a process environment variable by name. Any domain other than
// "env" is rejected as a configuration error; an unset variable resolves to
// the empty string, matching the original ansible_lookup behaviour.
func Env(domain string, key string) (string, error) {
	if domain != envDomain {
		return "", errs.Config("lookup: unsupported domain %q, only %q is supported", domain, envDomain)
	}
	return os.Getenv(key), nil
}
