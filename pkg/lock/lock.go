// Package lock serializes mutations of the same accounts.
package lock

import (
	"context"
	"slices"
)

// Unlock releases every key acquired by one Lock call.
type Unlock func()

// Locker acquires exclusive ownership of a set of keys.
// Implementations acquire keys in Keys order so that two callers locking
// overlapping sets cannot deadlock.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (Unlock, error)
}

// Keys returns keys sorted and without duplicates or empty entries.
func Keys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Account returns the lock key of an account number.
func Account(number string) string {
	if number == "" {
		return ""
	}
	return "account:" + number
}

// Client returns the lock key guarding a client's card and account quotas.
func Client(id string) string {
	return "client:" + id
}

// AccountSequence guards account number assignment.
const AccountSequence = "accounts:sequence"
