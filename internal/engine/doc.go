// Package engine composes the obfuscation stages into a pipeline. On
// obfuscation the substitution cipher runs before the shuffle; on reversal
// the shuffle inverse runs first. The engine is pure: it never touches the
// filesystem and keeps no state between calls. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
