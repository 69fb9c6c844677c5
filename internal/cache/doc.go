// Package cache persists the single-slot prompt segment cache.
//
// The slot holds the last rendered segment keyed by the directory it was
// computed for, with a 5-second freshness window. It lives in a per-session
// scratch file because the host shell runs chprompt as a fresh process on
// every prompt redraw.
package cache
