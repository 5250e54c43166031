// Package mailer renders markdown email templates and sends them through a
// pluggable Sender.
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	subject: "New order from {{.Name}}"
//	---
//	**Phone:** {{.Phone}}
//
// The body is executed with text/template, converted to HTML with goldmark
// and wrapped in an optional html/template layout. The executed markdown is
// kept as the plain text alternative.
//
// The resend subpackage provides a Sender backed by the Resend API;
// [LogSender] only logs and is used when no provider is configured.
package mailer
