package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// fingerprintLen is the number of hex characters kept from the sha256
// digest. 8 hex chars (32 bits) is ample to distinguish task definitions
// within a single recipe without producing unreadable cache keys.
const fingerprintLen = 8

// writeField feeds a length-prefixed field into h so that, e.g., an
// output "ab" followed by output "c" can never collide with outputs "a"
// followed by "bc" the way naive string concatenation would.
func writeField(h hash.Hash, s string) {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
	h.Write(lenBuf[:])
	h.Write([]byte(s))
	h.Write([]byte{0x00})
}

// TaskFingerprint computes task_hash: a short deterministic digest of a
// task's command, outputs, working directory, and declared parameters as
// an ordered list of (name, type_tag) pairs. Defaults are deliberately
// excluded: a parameter's default only affects behaviour when an
// argument is omitted, which is already captured by args_hash on that
// invocation. Any edit to these fields changes the fingerprint, so the
// task's old state entries are pruned and its next status is never_run.
func TaskFingerprint(t Task) string {
	h := sha256.New()
	writeField(h, t.Command)
	writeField(h, t.WorkingDir)
	for _, o := range t.Outputs {
		writeField(h, o)
	}
	for _, p := range t.Parameters {
		writeField(h, p.Name)
		writeField(h, string(p.Type))
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

// ArgsFingerprint computes args_hash: a short deterministic digest of the
// canonically coerced argument values passed to a single invocation, in
// the task's declared parameter order. Two invocations with the same
// arguments produce the same args_hash regardless of the order the flags
// were typed on the command line. A parameterless invocation has no
// args_hash. Booleans are folded to "0"/"1" here, matching the spec's
// canonical encoding for fingerprinting even though CoerceArgument
// returns "true"/"false" for command substitution.
func ArgsFingerprint(args []ResolvedArg) string {
	if len(args) == 0 {
		return ""
	}
	h := sha256.New()
	for _, a := range args {
		writeField(h, a.Name)
		if a.Type == ParamBool {
			if a.Value == "true" {
				writeField(h, "1")
			} else {
				writeField(h, "0")
			}
			continue
		}
		writeField(h, a.Value)
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

// CacheKey joins task_hash and args_hash per the "task_hash__args_hash"
// convention; a parameterless task's cache key is its task_hash alone.
func CacheKey(taskHash, argsHash string) string {
	if argsHash == "" {
		return taskHash
	}
	return taskHash + "__" + argsHash
}
