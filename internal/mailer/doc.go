// Package mailer emails scan reports using credentials stored in
// plain files alongside the tool's configuration.
package mailer
