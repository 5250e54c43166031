// Package sanitizer turns untrusted form input into plain text.
package sanitizer
