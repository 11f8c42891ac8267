/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Undefined is the sentinel returned by String when a key is not found.
const Undefined = "undefined"

// kibiSuffix is stripped from integer values before parsing.
const kibiSuffix = "Ki"

// Field is the result of a single leaf extraction. Defaulted is true when
// the key was absent or its value could not be decoded and Value holds the
// fallback instead.
type Field[T any] struct {
	Value     T
	Defaulted bool
}

func found[T any](v T) Field[T] {
	return Field[T]{Value: v}
}

func fallback[T any](v T) Field[T] {
	return Field[T]{Value: v, Defaulted: true}
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// keyPattern returns the compiled line matcher for key followed by the
// value pattern. Lines may be indented and may carry a YAML list marker.
func keyPattern(key, value string) *regexp.Regexp {
	expr := `(?m)^[ \t]*(?:-[ \t]+)?` + regexp.QuoteMeta(key) + `:[ \t]+(` + value + `)`

	patternMu.Lock()
	defer patternMu.Unlock()

	re, ok := patternCache[expr]
	if !ok {
		re = regexp.MustCompile(expr)
		patternCache[expr] = re
	}
	return re
}

func lookup(text, key string) (string, bool) {
	m := keyPattern(key, `[^\n]*`).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// String returns the trimmed value of the first "key: value" line in text,
// or Undefined when there is none.
func String(text, key string) Field[string] {
	return StringOr(text, key, Undefined)
}

// StringOr is String with an explicit default.
func StringOr(text, key, def string) Field[string] {
	v, ok := lookup(text, key)
	if !ok {
		return fallback(def)
	}
	return found(v)
}

// Token returns the first value after "key:" that matches the regular
// expression pattern, or Undefined when no line matches.
func Token(text, key, pattern string) Field[string] {
	m := keyPattern(key, pattern).FindStringSubmatch(text)
	if m == nil {
		return fallback(Undefined)
	}
	return found(m[1])
}

// Int returns the value of key as a 32-bit integer after stripping a
// trailing "Ki". Missing keys, non-numeric values and overflow yield 0.
func Int(text, key string) Field[int] {
	v, ok := lookup(text, key)
	if !ok {
		return fallback(0)
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(v, kibiSuffix), 10, 32)
	if err != nil {
		return fallback(0)
	}
	return found(int(n))
}

// Int64 returns the value of key as a 64-bit integer. No unit suffix is
// stripped. Missing keys and unparsable values yield 0.
func Int64(text, key string) Field[int64] {
	v, ok := lookup(text, key)
	if !ok {
		return fallback[int64](0)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback[int64](0)
	}
	return found(n)
}
