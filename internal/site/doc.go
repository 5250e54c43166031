// Package site holds the shell state of the page and the pure transitions
// between states: theme toggling, locale selection and the lightbox.
// Handlers load a State from the request, Reduce it with an Action, persist
// what changed and render from the result.
package site
