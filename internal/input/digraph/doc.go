// Package digraph composes a single literal character from a two-key
// sequence, as Vim does after <C-k> ("<C-k>a:" inserts "ä").
//
// Table holds the digraph definitions: a built-in RFC 1345 subset that
// configuration can extend. Machine is the short-lived side state that
// intercepts the two keys and reports NeedMore, Rejected or Resolved.
package digraph
