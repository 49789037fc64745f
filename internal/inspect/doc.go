// Package inspect builds the dry-run report for one file: what the tag
// holds, how an ordinary tag reader sees it, and what conversion would
// write. Nothing is modified.
package inspect
